package rules

import (
	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/rewrite"
	"github.com/luamend/luamend/pkg/visit"
)

// RemoveContinueRuleName is the configuration name of the rule.
const RemoveContinueRuleName = "remove_continue"

const defaultContinueVariableFormat = "_LUAMEND_REMOVE_CONTINUE_{name}{hash}"

func init() {
	rewrite.Register(RemoveContinueRuleName, func() rewrite.Rule {
		return rewrite.Flawless(NewRemoveContinue())
	})
}

// RemoveContinue rewrites loop bodies containing `continue` into
// equivalent code using only `break` and structured control flow.
//
// Loops whose body has continues but no breaks get their body wrapped in a
// single-pass `repeat ... until true`; every continue becomes a break out
// of that wrapper, which resumes the next outer iteration. When real
// breaks are present too, a boolean sentinel local distinguishes the two:
// the cheaper side (whichever of continue/break occurs less often) sets
// the sentinel, and a conditional after the wrapper re-raises a genuine
// break exactly when the sentinel indicates one.
type RemoveContinue struct {
	runtimeVariableFormat string
}

// NewRemoveContinue returns the rule with its default configuration.
func NewRemoveContinue() *RemoveContinue {
	return &RemoveContinue{runtimeVariableFormat: defaultContinueVariableFormat}
}

// Name implements rewrite.FlawlessRule.
func (r *RemoveContinue) Name() string { return RemoveContinueRuleName }

// Description implements rewrite.FlawlessRule.
func (r *RemoveContinue) Description() string {
	return "Rewrites continue statements into breaks out of a single-pass wrapper loop."
}

// ConfigKeys implements rewrite.FlawlessRule.
func (r *RemoveContinue) ConfigKeys() []string {
	return []string{"runtime_variable_format"}
}

// Configure implements rewrite.FlawlessRule.
func (r *RemoveContinue) Configure(properties rewrite.Properties) error {
	format := r.runtimeVariableFormat
	for key, value := range properties {
		switch key {
		case "runtime_variable_format":
			s, err := rewrite.StringProperty(key, value)
			if err != nil {
				return err
			}
			if err := validateRuntimeVariableFormat(key, s); err != nil {
				return err
			}
			format = s
		default:
			return &rewrite.UnexpectedPropertyError{Property: key}
		}
	}
	r.runtimeVariableFormat = format
	return nil
}

// Properties implements rewrite.FlawlessRule.
func (r *RemoveContinue) Properties() rewrite.Properties {
	properties := rewrite.Properties{}
	if r.runtimeVariableFormat != defaultContinueVariableFormat {
		properties["runtime_variable_format"] = r.runtimeVariableFormat
	}
	return properties
}

// ApplyFlawless implements rewrite.FlawlessRule.
func (r *RemoveContinue) ApplyFlawless(block *ast.Block, ctx *rewrite.Context) {
	builder := newRuntimeVariableBuilder(
		r.runtimeVariableFormat, RemoveContinueRuleName, ctx.OriginalSource)
	p := &continueProcessor{
		breakVariable:    builder.Build("break"),
		continueVariable: builder.Build("continue"),
	}
	visit.Block(block, p)
}

type continueProcessor struct {
	visit.NoopProcessor
	breakVariable    string
	continueVariable string
}

func (p *continueProcessor) ProcessStatement(c *visit.Cursor) {
	switch stmt := c.Statement().(type) {
	case *ast.NumericForStatement:
		p.process(stmt.Block)
	case *ast.GenericForStatement:
		p.process(stmt.Block)
	case *ast.RepeatStatement:
		p.process(stmt.Block)
	case *ast.WhileStatement:
		p.process(stmt.Block)
	}
}

// process rewrites one loop body. The traversal revisits the rewritten
// body afterwards, which is a no-op (no continues remain) and still
// reaches nested loops.
func (p *continueProcessor) process(body *ast.Block) {
	continues, breaks := countContinueBreak(body)
	if continues == 0 {
		return
	}

	var stmts []ast.Statement
	var breakHandler ast.Statement

	if breaks > 0 {
		// Pick the sentinel meaning by rewrite cost: mark whichever
		// terminator occurs less often.
		markContinue := continues < breaks

		var sentinel string
		var condition ast.Expression
		if markContinue {
			sentinel = p.continueVariable
			condition = &ast.UnaryExpression{
				Operator:   ast.UnaryNot,
				Expression: &ast.Identifier{Name: sentinel},
			}
		} else {
			sentinel = p.breakVariable
			condition = &ast.Identifier{Name: sentinel}
		}

		convertTerminators(body, sentinel, markContinue)

		stmts = append(stmts, &ast.LocalAssignStatement{
			Variables: []*ast.TypedIdentifier{{Name: sentinel}},
			Values:    []ast.Expression{&ast.BooleanExpression{Value: false}},
		})
		breakHandler = &ast.IfStatement{
			Branches: []*ast.IfBranch{{
				Condition: condition,
				Block:     &ast.Block{Last: &ast.BreakStatement{}},
			}},
		}
	} else {
		continuesToBreaks(body)
	}

	// The wrapper gets a deep copy so the rebuilt outer body and the
	// repeat body never alias statements.
	wrapper := &ast.RepeatStatement{
		Block:     ast.CloneBlock(body),
		Condition: &ast.BooleanExpression{Value: true},
	}
	stmts = append(stmts, wrapper)
	if breakHandler != nil {
		stmts = append(stmts, breakHandler)
	}

	body.Statements = stmts
	body.Last = nil
}

// countContinueBreak counts continue and break terminators reachable
// through nested if/do statements. Nested loops own their terminators and
// are not descended into.
func countContinueBreak(b *ast.Block) (continues, breaks int) {
	switch b.Last.(type) {
	case *ast.ContinueStatement:
		continues = 1
	case *ast.BreakStatement:
		breaks = 1
	}
	for _, s := range b.Statements {
		switch stmt := s.(type) {
		case *ast.IfStatement:
			for _, branch := range stmt.Branches {
				c, brk := countContinueBreak(branch.Block)
				continues += c
				breaks += brk
			}
			if stmt.Else != nil {
				c, brk := countContinueBreak(stmt.Else)
				continues += c
				breaks += brk
			}
		case *ast.DoStatement:
			c, brk := countContinueBreak(stmt.Block)
			continues += c
			breaks += brk
		}
	}
	return continues, breaks
}

// continuesToBreaks converts every reachable continue terminator into a
// break. Valid only when the loop body contains no real breaks.
func continuesToBreaks(b *ast.Block) {
	if _, ok := b.Last.(*ast.ContinueStatement); ok {
		b.Last = &ast.BreakStatement{}
	}
	forEachNestedBlock(b, continuesToBreaks)
}

// convertTerminators converts both continue and break terminators into
// breaks, setting the sentinel before the one it marks. With markContinue
// a continue becomes `sentinel = true break`; otherwise a break does.
func convertTerminators(b *ast.Block, sentinel string, markContinue bool) {
	setSentinel := func() ast.Statement {
		return &ast.AssignStatement{
			Variables: []ast.Variable{&ast.Identifier{Name: sentinel}},
			Values:    []ast.Expression{&ast.BooleanExpression{Value: true}},
		}
	}
	switch b.Last.(type) {
	case *ast.ContinueStatement:
		if markContinue {
			b.PushStatement(setSentinel())
		}
		b.Last = &ast.BreakStatement{}
	case *ast.BreakStatement:
		if !markContinue {
			b.PushStatement(setSentinel())
		}
		b.Last = &ast.BreakStatement{}
	}
	forEachNestedBlock(b, func(nested *ast.Block) {
		convertTerminators(nested, sentinel, markContinue)
	})
}

// forEachNestedBlock visits the blocks of if/do statements, the only
// compound statements whose terminators belong to the enclosing loop.
func forEachNestedBlock(b *ast.Block, fn func(*ast.Block)) {
	for _, s := range b.Statements {
		switch stmt := s.(type) {
		case *ast.IfStatement:
			for _, branch := range stmt.Branches {
				fn(branch.Block)
			}
			if stmt.Else != nil {
				fn(stmt.Else)
			}
		case *ast.DoStatement:
			fn(stmt.Block)
		}
	}
}
