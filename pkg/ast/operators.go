package ast

// UnaryOperator identifies a unary operator.
type UnaryOperator int

// Unary operators.
const (
	UnaryMinus UnaryOperator = iota
	UnaryNot
	UnaryLength
)

// String returns the source form of the operator.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "not"
	case UnaryLength:
		return "#"
	}
	return "?"
}

// BinaryOperator identifies a binary operator.
type BinaryOperator int

// Binary operators.
const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryFloorDiv
	BinaryMod
	BinaryPow
	BinaryConcat
	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual
	BinaryAnd
	BinaryOr
)

// String returns the source form of the operator.
func (op BinaryOperator) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryFloorDiv:
		return "//"
	case BinaryMod:
		return "%"
	case BinaryPow:
		return "^"
	case BinaryConcat:
		return ".."
	case BinaryEqual:
		return "=="
	case BinaryNotEqual:
		return "~="
	case BinaryLess:
		return "<"
	case BinaryLessEqual:
		return "<="
	case BinaryGreater:
		return ">"
	case BinaryGreaterEqual:
		return ">="
	case BinaryAnd:
		return "and"
	case BinaryOr:
		return "or"
	}
	return "?"
}
