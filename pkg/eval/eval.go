// Package eval implements a sound partial evaluator over Lua expressions.
//
// Evaluate returns a concrete Value only when the expression provably
// produces it; everything involving a call, an unresolved name or indexing
// resolves to Unknown. Consumers rely on that guarantee to distinguish
// "provably this value" from "may collide or have side effects at runtime".
package eval

import (
	"math"
	"strconv"

	"github.com/luamend/luamend/pkg/ast"
)

// Value is the result of partially evaluating an expression.
type Value interface {
	valueNode()
}

// Nil is a known nil.
type Nil struct{}

func (Nil) valueNode() {}

// Bool is a known boolean.
type Bool bool

func (Bool) valueNode() {}

// Number is a known number.
type Number float64

func (Number) valueNode() {}

// String is a known string.
type String string

func (String) valueNode() {}

// Unknown marks an expression whose value cannot be proven.
type Unknown struct{}

func (Unknown) valueNode() {}

// IsTruthy reports Lua truthiness for a known value. ok is false for
// Unknown.
func IsTruthy(v Value) (truthy, ok bool) {
	switch val := v.(type) {
	case Nil:
		return false, true
	case Bool:
		return bool(val), true
	case Number, String:
		return true, true
	}
	return false, false
}

// Evaluator folds expressions to values. The zero value is ready to use.
type Evaluator struct{}

// Evaluate returns the provable value of an expression, or Unknown.
func (e Evaluator) Evaluate(expr ast.Expression) Value {
	switch x := expr.(type) {
	case *ast.NilExpression:
		return Nil{}
	case *ast.BooleanExpression:
		return Bool(x.Value)
	case *ast.NumberExpression:
		return Number(x.Value)
	case *ast.StringExpression:
		return String(x.Value)
	case *ast.ParentheseExpression:
		return e.Evaluate(x.Expression)
	case *ast.UnaryExpression:
		return e.evaluateUnary(x)
	case *ast.BinaryExpression:
		return e.evaluateBinary(x)
	}
	// Identifiers, varargs, calls, field and index accesses, tables and
	// function literals are never folded.
	return Unknown{}
}

func (e Evaluator) evaluateUnary(expr *ast.UnaryExpression) Value {
	inner := e.Evaluate(expr.Expression)
	switch expr.Operator {
	case ast.UnaryNot:
		if truthy, ok := IsTruthy(inner); ok {
			return Bool(!truthy)
		}
	case ast.UnaryMinus:
		if n, ok := inner.(Number); ok {
			return Number(-n)
		}
	case ast.UnaryLength:
		if s, ok := inner.(String); ok {
			return Number(len(s))
		}
	}
	return Unknown{}
}

func (e Evaluator) evaluateBinary(expr *ast.BinaryExpression) Value {
	switch expr.Operator {
	case ast.BinaryAnd, ast.BinaryOr:
		return e.evaluateLogical(expr)
	}

	left := e.Evaluate(expr.Left)
	right := e.Evaluate(expr.Right)

	switch expr.Operator {
	case ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv,
		ast.BinaryFloorDiv, ast.BinaryMod, ast.BinaryPow:
		return evaluateArithmetic(expr.Operator, left, right)
	case ast.BinaryConcat:
		return evaluateConcat(left, right)
	case ast.BinaryEqual:
		if eq, ok := valuesEqual(left, right); ok {
			return Bool(eq)
		}
	case ast.BinaryNotEqual:
		if eq, ok := valuesEqual(left, right); ok {
			return Bool(!eq)
		}
	case ast.BinaryLess, ast.BinaryLessEqual, ast.BinaryGreater, ast.BinaryGreaterEqual:
		return evaluateComparison(expr.Operator, left, right)
	}
	return Unknown{}
}

// evaluateLogical folds and/or with Lua short-circuit semantics. The
// result is Unknown unless the left side is known, and, when the operator
// does not short-circuit, the right side is known too.
func (e Evaluator) evaluateLogical(expr *ast.BinaryExpression) Value {
	left := e.Evaluate(expr.Left)
	truthy, ok := IsTruthy(left)
	if !ok {
		return Unknown{}
	}
	shortCircuits := (expr.Operator == ast.BinaryAnd && !truthy) ||
		(expr.Operator == ast.BinaryOr && truthy)
	if shortCircuits {
		return left
	}
	return e.Evaluate(expr.Right)
}

func evaluateArithmetic(op ast.BinaryOperator, left, right Value) Value {
	a, ok := left.(Number)
	if !ok {
		return Unknown{}
	}
	b, ok := right.(Number)
	if !ok {
		return Unknown{}
	}
	x, y := float64(a), float64(b)
	switch op {
	case ast.BinaryAdd:
		return Number(x + y)
	case ast.BinarySub:
		return Number(x - y)
	case ast.BinaryMul:
		return Number(x * y)
	case ast.BinaryDiv:
		return Number(x / y)
	case ast.BinaryFloorDiv:
		return Number(math.Floor(x / y))
	case ast.BinaryMod:
		// Lua modulo: a - floor(a/b)*b
		return Number(x - math.Floor(x/y)*y)
	case ast.BinaryPow:
		return Number(math.Pow(x, y))
	}
	return Unknown{}
}

// evaluateConcat folds `..` when both operands have an exact text form:
// strings, or numbers with an integral value. Non-integral numbers are not
// folded to avoid committing to a specific float formatting.
func evaluateConcat(left, right Value) Value {
	a, ok := concatText(left)
	if !ok {
		return Unknown{}
	}
	b, ok := concatText(right)
	if !ok {
		return Unknown{}
	}
	return String(a + b)
}

func concatText(v Value) (string, bool) {
	switch val := v.(type) {
	case String:
		return string(val), true
	case Number:
		f := float64(val)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return strconv.FormatInt(int64(f), 10), true
		}
	}
	return "", false
}

func valuesEqual(left, right Value) (equal, ok bool) {
	switch a := left.(type) {
	case Nil:
		_, isNil := right.(Nil)
		return isNil, known(right)
	case Bool:
		if b, isBool := right.(Bool); isBool {
			return a == b, true
		}
		return false, known(right)
	case Number:
		if b, isNumber := right.(Number); isNumber {
			return a == b, true
		}
		return false, known(right)
	case String:
		if b, isString := right.(String); isString {
			return a == b, true
		}
		return false, known(right)
	}
	return false, false
}

func known(v Value) bool {
	_, unknown := v.(Unknown)
	return !unknown
}

func evaluateComparison(op ast.BinaryOperator, left, right Value) Value {
	if a, ok := left.(Number); ok {
		if b, ok := right.(Number); ok {
			return compareResult(op, float64(a) < float64(b), float64(a) == float64(b))
		}
		return Unknown{}
	}
	if a, ok := left.(String); ok {
		if b, ok := right.(String); ok {
			return compareResult(op, a < b, a == b)
		}
	}
	return Unknown{}
}

func compareResult(op ast.BinaryOperator, less, equal bool) Value {
	switch op {
	case ast.BinaryLess:
		return Bool(less)
	case ast.BinaryLessEqual:
		return Bool(less || equal)
	case ast.BinaryGreater:
		return Bool(!less && !equal)
	case ast.BinaryGreaterEqual:
		return Bool(!less)
	}
	return Unknown{}
}

