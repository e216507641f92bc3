package eval

import "github.com/luamend/luamend/pkg/ast"

// HasSideEffects reports whether evaluating the expression may be
// observable. Calls always count. Field and index accesses count because
// they can invoke an __index metamethod. Operators applied to operands
// that do not fold to primitives count because they can invoke arithmetic
// or comparison metamethods. False positives are acceptable; false
// negatives are not.
func (e Evaluator) HasSideEffects(expr ast.Expression) bool {
	switch x := expr.(type) {
	case *ast.NilExpression, *ast.BooleanExpression, *ast.NumberExpression,
		*ast.StringExpression, *ast.VarargsExpression, *ast.Identifier,
		*ast.FunctionExpression:
		return false
	case *ast.FunctionCall, *ast.FieldExpression, *ast.IndexExpression:
		return true
	case *ast.ParentheseExpression:
		return e.HasSideEffects(x.Expression)
	case *ast.UnaryExpression:
		if e.HasSideEffects(x.Expression) {
			return true
		}
		if x.Operator == ast.UnaryNot {
			return false
		}
		return !known(e.Evaluate(x.Expression))
	case *ast.BinaryExpression:
		if e.HasSideEffects(x.Left) || e.HasSideEffects(x.Right) {
			return true
		}
		switch x.Operator {
		case ast.BinaryAnd, ast.BinaryOr, ast.BinaryEqual, ast.BinaryNotEqual:
			return false
		}
		return !known(e.Evaluate(x.Left)) || !known(e.Evaluate(x.Right))
	case *ast.TableExpression:
		for _, entry := range x.Entries {
			switch en := entry.(type) {
			case *ast.ValueEntry:
				if e.HasSideEffects(en.Value) {
					return true
				}
			case *ast.IndexEntry:
				if e.HasSideEffects(en.Key) || e.HasSideEffects(en.Value) {
					return true
				}
			case *ast.FieldEntry:
				if e.HasSideEffects(en.Value) {
					return true
				}
			}
		}
		return false
	}
	return true
}
