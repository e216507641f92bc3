// Package visit implements the depth-first, mutation-capable traversal
// used by all rewrite rules.
//
// Statements are visited in textual order. For compound statements the
// condition and iterator expressions are visited before the nested blocks,
// except for repeat loops where the condition follows the body textually.
// Hooks may mutate the node they are looking at: expression hooks receive a
// pointer to the slot holding the expression, statement hooks receive a
// Cursor that can replace the current statement or insert siblings before
// it. After a hook returns, the traversal descends into the (possibly
// replaced) node.
package visit

import (
	"slices"

	"github.com/luamend/luamend/pkg/ast"
)

// Processor receives traversal callbacks. Embed NoopProcessor to only
// implement the hooks a rule needs.
type Processor interface {
	// ProcessBlock fires when the traversal enters a block, before any of
	// its statements are visited. The block may be rebuilt in place.
	ProcessBlock(b *ast.Block)

	// ProcessStatement fires for every statement. The cursor supports
	// replacing the current statement and inserting siblings before it.
	ProcessStatement(c *Cursor)

	// ProcessExpression fires for every expression slot. Assigning through
	// the pointer replaces the expression; the traversal then descends
	// into the new node.
	ProcessExpression(e *ast.Expression)
}

// NoopProcessor implements Processor with empty hooks.
type NoopProcessor struct{}

// ProcessBlock does nothing.
func (NoopProcessor) ProcessBlock(*ast.Block) {}

// ProcessStatement does nothing.
func (NoopProcessor) ProcessStatement(*Cursor) {}

// ProcessExpression does nothing.
func (NoopProcessor) ProcessExpression(*ast.Expression) {}

// Cursor points at the statement currently being visited and supports
// structural mutation at that position.
type Cursor struct {
	block *ast.Block
	index int
}

// Statement returns the statement under the cursor.
func (c *Cursor) Statement() ast.Statement {
	return c.block.Statements[c.index]
}

// Block returns the block owning the cursor position.
func (c *Cursor) Block() *ast.Block {
	return c.block
}

// Index returns the current statement index inside the owning block.
func (c *Cursor) Index() int {
	return c.index
}

// Replace swaps the statement under the cursor. The traversal descends
// into the replacement.
func (c *Cursor) Replace(s ast.Statement) {
	c.block.Statements[c.index] = s
}

// InsertBefore inserts statements before the current one. The cursor
// advances past the insertion so the current statement is visited exactly
// once; the inserted statements are not visited.
func (c *Cursor) InsertBefore(stmts ...ast.Statement) {
	c.block.Statements = slices.Insert(c.block.Statements, c.index, stmts...)
	c.index += len(stmts)
}

// Block walks a block depth-first, firing p's hooks.
func Block(b *ast.Block, p Processor) {
	p.ProcessBlock(b)
	c := &Cursor{block: b}
	for ; c.index < len(b.Statements); c.index++ {
		p.ProcessStatement(c)
		statement(b.Statements[c.index], p)
	}
	if ret, ok := b.Last.(*ast.ReturnStatement); ok {
		expressions(ret.Expressions, p)
	}
}

func statement(s ast.Statement, p Processor) {
	switch stmt := s.(type) {
	case *ast.AssignStatement:
		for _, v := range stmt.Variables {
			variable(v, p)
		}
		expressions(stmt.Values, p)
	case *ast.CompoundAssignStatement:
		variable(stmt.Variable, p)
		expression(&stmt.Value, p)
	case *ast.LocalAssignStatement:
		expressions(stmt.Values, p)
	case *ast.LocalFunctionStatement:
		Block(stmt.Block, p)
	case *ast.FunctionStatement:
		Block(stmt.Block, p)
	case *ast.CallStatement:
		functionCall(stmt.Call, p)
	case *ast.IfStatement:
		for _, branch := range stmt.Branches {
			expression(&branch.Condition, p)
			Block(branch.Block, p)
		}
		if stmt.Else != nil {
			Block(stmt.Else, p)
		}
	case *ast.WhileStatement:
		expression(&stmt.Condition, p)
		Block(stmt.Block, p)
	case *ast.RepeatStatement:
		Block(stmt.Block, p)
		expression(&stmt.Condition, p)
	case *ast.NumericForStatement:
		expression(&stmt.Start, p)
		expression(&stmt.End, p)
		if stmt.Step != nil {
			expression(&stmt.Step, p)
		}
		Block(stmt.Block, p)
	case *ast.GenericForStatement:
		expressions(stmt.Expressions, p)
		Block(stmt.Block, p)
	case *ast.DoStatement:
		Block(stmt.Block, p)
	}
}

func expression(e *ast.Expression, p Processor) {
	p.ProcessExpression(e)
	switch expr := (*e).(type) {
	case *ast.UnaryExpression:
		expression(&expr.Expression, p)
	case *ast.BinaryExpression:
		expression(&expr.Left, p)
		expression(&expr.Right, p)
	case *ast.ParentheseExpression:
		expression(&expr.Expression, p)
	case *ast.TableExpression:
		for _, entry := range expr.Entries {
			tableEntry(entry, p)
		}
	case *ast.FunctionExpression:
		Block(expr.Block, p)
	case *ast.FunctionCall:
		functionCall(expr, p)
	case *ast.FieldExpression:
		expression(&expr.Prefix, p)
	case *ast.IndexExpression:
		expression(&expr.Prefix, p)
		expression(&expr.Index, p)
	}
}

func expressions(exprs []ast.Expression, p Processor) {
	for i := range exprs {
		expression(&exprs[i], p)
	}
}

func functionCall(call *ast.FunctionCall, p Processor) {
	expression(&call.Prefix, p)
	expressions(call.Arguments, p)
}

func tableEntry(entry ast.TableEntry, p Processor) {
	switch en := entry.(type) {
	case *ast.ValueEntry:
		expression(&en.Value, p)
	case *ast.IndexEntry:
		expression(&en.Key, p)
		expression(&en.Value, p)
	case *ast.FieldEntry:
		expression(&en.Value, p)
	}
}

// variable visits the expressions nested in an assignment target. The
// target itself is not an expression slot and cannot be replaced.
func variable(v ast.Variable, p Processor) {
	switch target := v.(type) {
	case *ast.FieldExpression:
		expression(&target.Prefix, p)
	case *ast.IndexExpression:
		expression(&target.Prefix, p)
		expression(&target.Index, p)
	}
}
