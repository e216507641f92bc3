package format

import (
	"math"
	"strconv"

	"github.com/luamend/luamend/pkg/ast"
)

// Binding strength, from `or` (weakest) to `^` (strongest). Concatenation
// and exponentiation are right associative.
const (
	precOr = iota + 1
	precAnd
	precComparison
	precConcat
	precAdditive
	precMultiplicative
	precUnary
	precPower
)

func binaryPrecedence(op ast.BinaryOperator) (prec int, rightAssoc bool) {
	switch op {
	case ast.BinaryOr:
		return precOr, false
	case ast.BinaryAnd:
		return precAnd, false
	case ast.BinaryEqual, ast.BinaryNotEqual, ast.BinaryLess,
		ast.BinaryLessEqual, ast.BinaryGreater, ast.BinaryGreaterEqual:
		return precComparison, false
	case ast.BinaryConcat:
		return precConcat, true
	case ast.BinaryAdd, ast.BinarySub:
		return precAdditive, false
	case ast.BinaryMul, ast.BinaryDiv, ast.BinaryFloorDiv, ast.BinaryMod:
		return precMultiplicative, false
	case ast.BinaryPow:
		return precPower, true
	}
	return precOr, false
}

// expression renders expr; context is the minimum binding strength the
// surrounding expression requires, zero when unconstrained.
func (p *printer) expression(expr ast.Expression, context int) {
	switch e := expr.(type) {
	case *ast.NilExpression:
		p.write("nil")
	case *ast.BooleanExpression:
		if e.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.NumberExpression:
		p.write(formatNumber(e.Value))
	case *ast.StringExpression:
		p.write(WriteString(e.Value))
	case *ast.VarargsExpression:
		p.write("...")
	case *ast.Identifier:
		p.write(e.Name)
	case *ast.ParentheseExpression:
		p.write("(")
		p.expression(e.Expression, 0)
		p.write(")")
	case *ast.UnaryExpression:
		if precUnary < context {
			p.write("(")
			p.unary(e)
			p.write(")")
		} else {
			p.unary(e)
		}
	case *ast.BinaryExpression:
		prec, rightAssoc := binaryPrecedence(e.Operator)
		if prec < context {
			p.write("(")
			p.binary(e, prec, rightAssoc)
			p.write(")")
		} else {
			p.binary(e, prec, rightAssoc)
		}
	case *ast.TableExpression:
		p.table(e)
	case *ast.FunctionExpression:
		p.write("function")
		p.functionBody(e.Parameters, e.IsVariadic, e.Block)
	case *ast.FunctionCall:
		p.functionCall(e)
	case *ast.FieldExpression:
		p.prefix(e.Prefix)
		p.write(".")
		p.write(e.Field)
	case *ast.IndexExpression:
		p.prefix(e.Prefix)
		p.write("[")
		p.expression(e.Index, 0)
		p.write("]")
	}
}

func (p *printer) unary(e *ast.UnaryExpression) {
	p.write(e.Operator.String())
	if e.Operator == ast.UnaryNot {
		p.space()
	}
	p.expression(e.Expression, precUnary)
}

func (p *printer) binary(e *ast.BinaryExpression, prec int, rightAssoc bool) {
	left, right := prec, prec+1
	if rightAssoc {
		left, right = prec+1, prec
	}
	p.expression(e.Left, left)
	p.space()
	p.write(e.Operator.String())
	p.space()
	p.expression(e.Right, right)
}

func (p *printer) table(e *ast.TableExpression) {
	p.write("{")
	for i, entry := range e.Entries {
		if i > 0 {
			p.write(",")
			p.space()
		}
		switch en := entry.(type) {
		case *ast.ValueEntry:
			p.expression(en.Value, 0)
		case *ast.FieldEntry:
			p.write(en.Field)
			p.space()
			p.write("=")
			p.space()
			p.expression(en.Value, 0)
		case *ast.IndexEntry:
			p.write("[")
			p.expression(en.Key, 0)
			p.write("]")
			p.space()
			p.write("=")
			p.space()
			p.expression(en.Value, 0)
		}
	}
	p.write("}")
}

func (p *printer) functionCall(call *ast.FunctionCall) {
	p.prefix(call.Prefix)
	if call.Method != "" {
		p.write(":")
		p.write(call.Method)
	}
	p.write("(")
	p.expressions(call.Arguments)
	p.write(")")
}

// prefix renders the target of a call, field or index access, wrapping
// anything that is not itself a prefix expression in parentheses.
func (p *printer) prefix(expr ast.Expression) {
	switch expr.(type) {
	case *ast.Identifier, *ast.FieldExpression, *ast.IndexExpression,
		*ast.FunctionCall, *ast.ParentheseExpression:
		p.expression(expr, 0)
	default:
		p.write("(")
		p.expression(expr, 0)
		p.write(")")
	}
}

func formatNumber(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
