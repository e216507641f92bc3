package rules

import (
	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/rewrite"
	"github.com/luamend/luamend/pkg/visit"
)

// RemoveGeneralizedIterationRuleName is the configuration name of the rule.
const RemoveGeneralizedIterationRuleName = "remove_generalized_iteration"

const defaultIterationVariableFormat = "_LUAMEND_REMOVE_GENERALIZED_ITERATION_{name}{hash}"

// metatableVariableName is the literal name of the injected metatable
// local. It is reserved in the name builder so no hash-derived name can
// collide with it.
const metatableVariableName = "_m"

func init() {
	rewrite.Register(RemoveGeneralizedIterationRuleName, func() rewrite.Rule {
		return rewrite.Flawless(NewRemoveGeneralizedIteration())
	})
}

// RemoveGeneralizedIteration lowers `for ... in x do` loops with a single
// iterated expression to the classic three-value iterator protocol.
//
// The loop statement becomes a do-block that evaluates x exactly once into
// hidden locals, dispatches through `getmetatable(x).__iter` when x is a
// table whose metatable carries a callable __iter field, falls back to
// `pairs(x)` otherwise, and runs the original loop over the resolved
// iterator/invariant/control triple. The loop body is unchanged.
type RemoveGeneralizedIteration struct {
	runtimeVariableFormat string
}

// NewRemoveGeneralizedIteration returns the rule with its default
// configuration.
func NewRemoveGeneralizedIteration() *RemoveGeneralizedIteration {
	return &RemoveGeneralizedIteration{runtimeVariableFormat: defaultIterationVariableFormat}
}

// Name implements rewrite.FlawlessRule.
func (r *RemoveGeneralizedIteration) Name() string {
	return RemoveGeneralizedIterationRuleName
}

// Description implements rewrite.FlawlessRule.
func (r *RemoveGeneralizedIteration) Description() string {
	return "Lowers single-expression generic-for loops to the classic iterator protocol."
}

// ConfigKeys implements rewrite.FlawlessRule.
func (r *RemoveGeneralizedIteration) ConfigKeys() []string {
	return []string{"runtime_variable_format"}
}

// Configure implements rewrite.FlawlessRule.
func (r *RemoveGeneralizedIteration) Configure(properties rewrite.Properties) error {
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
func (r *RemoveGeneralizedIteration) Properties() rewrite.Properties {
	properties := rewrite.Properties{}
	if r.runtimeVariableFormat != defaultIterationVariableFormat {
		properties["runtime_variable_format"] = r.runtimeVariableFormat
	}
	return properties
}

// ApplyFlawless implements rewrite.FlawlessRule.
func (r *RemoveGeneralizedIteration) ApplyFlawless(block *ast.Block, ctx *rewrite.Context) {
	builder := newRuntimeVariableBuilder(
		r.runtimeVariableFormat, RemoveGeneralizedIterationRuleName,
		ctx.OriginalSource, metatableVariableName)
	p := &generalizedIterationProcessor{
		iteratorVariable:  builder.Build("iter"),
		invariantVariable: builder.Build("invar"),
		controlVariable:   builder.Build("control"),
	}
	visit.Block(block, p)
}

type generalizedIterationProcessor struct {
	visit.NoopProcessor
	iteratorVariable  string
	invariantVariable string
	controlVariable   string
}

func (p *generalizedIterationProcessor) ProcessStatement(c *visit.Cursor) {
	forStmt, ok := c.Statement().(*ast.GenericForStatement)
	if !ok || len(forStmt.Expressions) != 1 {
		// Multi-expression loops already use the classic protocol.
		return
	}
	c.Replace(p.lower(forStmt))
}

// lower builds the replacement do-block. The traversal descends into it
// afterwards; the rewritten loop now carries three expressions and is left
// alone, while loops nested in its body are still reached.
func (p *generalizedIterationProcessor) lower(forStmt *ast.GenericForStatement) ast.Statement {
	iterated := forStmt.Expressions[0]

	declareTriple := &ast.LocalAssignStatement{
		Variables: []*ast.TypedIdentifier{
			{Name: p.iteratorVariable},
			{Name: p.invariantVariable},
			{Name: p.controlVariable},
		},
		Values: []ast.Expression{iterated},
	}

	forStmt.Expressions = []ast.Expression{
		&ast.Identifier{Name: p.iteratorVariable},
		&ast.Identifier{Name: p.invariantVariable},
		&ast.Identifier{Name: p.controlVariable},
	}

	declareMetatable := &ast.LocalAssignStatement{
		Variables: []*ast.TypedIdentifier{{Name: metatableVariableName}},
		Values: []ast.Expression{&ast.FunctionCall{
			Prefix:    &ast.Identifier{Name: "getmetatable"},
			Arguments: []ast.Expression{&ast.Identifier{Name: p.iteratorVariable}},
		}},
	}

	metatableIter := func() ast.Expression {
		return &ast.FieldExpression{
			Prefix: &ast.Identifier{Name: metatableVariableName},
			Field:  "__iter",
		}
	}

	assignFromIter := p.assignTriple(&ast.FunctionCall{
		Prefix:    metatableIter(),
		Arguments: []ast.Expression{&ast.Identifier{Name: p.iteratorVariable}},
	})
	assignFromPairs := p.assignTriple(&ast.FunctionCall{
		Prefix:    &ast.Identifier{Name: "pairs"},
		Arguments: []ast.Expression{&ast.Identifier{Name: p.iteratorVariable}},
	})

	dispatch := &ast.IfStatement{
		Branches: []*ast.IfBranch{{
			Condition: &ast.BinaryExpression{
				Operator: ast.BinaryAnd,
				Left:     typeEquals(&ast.Identifier{Name: metatableVariableName}, "table"),
				Right:    typeEquals(metatableIter(), "function"),
			},
			Block: &ast.Block{Statements: []ast.Statement{assignFromIter}},
		}},
		Else: &ast.Block{Statements: []ast.Statement{assignFromPairs}},
	}

	resolveTable := &ast.IfStatement{
		Branches: []*ast.IfBranch{{
			Condition: typeEquals(&ast.Identifier{Name: p.iteratorVariable}, "table"),
			Block:     &ast.Block{Statements: []ast.Statement{declareMetatable, dispatch}},
		}},
	}

	return &ast.DoStatement{Block: &ast.Block{
		Statements: []ast.Statement{declareTriple, resolveTable, forStmt},
	}}
}

func (p *generalizedIterationProcessor) assignTriple(call *ast.FunctionCall) ast.Statement {
	return &ast.AssignStatement{
		Variables: []ast.Variable{
			&ast.Identifier{Name: p.iteratorVariable},
			&ast.Identifier{Name: p.invariantVariable},
			&ast.Identifier{Name: p.controlVariable},
		},
		Values: []ast.Expression{call},
	}
}

// typeEquals builds `type(arg) == "name"`.
func typeEquals(arg ast.Expression, typeName string) ast.Expression {
	return &ast.BinaryExpression{
		Operator: ast.BinaryEqual,
		Left: &ast.FunctionCall{
			Prefix:    &ast.Identifier{Name: "type"},
			Arguments: []ast.Expression{arg},
		},
		Right: &ast.StringExpression{Value: typeName},
	}
}
