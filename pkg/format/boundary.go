package format

import "github.com/luamend/luamend/pkg/ast"

func endsWithPrefix(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		if len(s.Values) > 0 {
			return endsWithCall(s.Values[len(s.Values)-1])
		}
	case *ast.CompoundAssignStatement:
		return endsWithCall(s.Value)
	case *ast.CallStatement:
		return true
	case *ast.RepeatStatement:
		return endsWithCall(s.Condition)
	case *ast.LocalAssignStatement:
		if len(s.Values) > 0 {
			return endsWithCall(s.Values[len(s.Values)-1])
		}
	}
	return false
}

func endsWithCall(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return endsWithCall(e.Right)
	case *ast.UnaryExpression:
		return endsWithCall(e.Expression)
	case *ast.FunctionCall, *ast.ParentheseExpression, *ast.Identifier,
		*ast.FieldExpression, *ast.IndexExpression:
		return true
	}
	return false
}

func startsWithParenthese(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		if len(s.Variables) > 0 {
			return variableStartsWithParenthese(s.Variables[0])
		}
	case *ast.CompoundAssignStatement:
		return variableStartsWithParenthese(s.Variable)
	case *ast.CallStatement:
		return prefixStartsWithParenthese(s.Call.Prefix)
	}
	return false
}

func variableStartsWithParenthese(v ast.Variable) bool {
	switch e := v.(type) {
	case *ast.FieldExpression:
		return prefixStartsWithParenthese(e.Prefix)
	case *ast.IndexExpression:
		return prefixStartsWithParenthese(e.Prefix)
	}
	return false
}

// prefixStartsWithParenthese accounts for the emitter wrapping anything
// that is not a prefix expression in parentheses.
func prefixStartsWithParenthese(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		return false
	case *ast.FunctionCall:
		return prefixStartsWithParenthese(e.Prefix)
	case *ast.FieldExpression:
		return prefixStartsWithParenthese(e.Prefix)
	case *ast.IndexExpression:
		return prefixStartsWithParenthese(e.Prefix)
	}
	return true
}
