// Package ast defines the Lua syntax tree rewritten by luamend.
//
// The model follows the usual split between statements, expressions and
// table constructor entries. Each category is an interface with an
// unexported marker method so that the compiler enforces exhaustive
// handling at the type-switch sites in pkg/visit and pkg/format.
//
// Ownership is strict: a Block owns its statements, a statement owns its
// child expressions and blocks. Rewrite rules mutate the tree in place and
// never retain references across rule boundaries.
package ast

// Statement is a Lua statement.
type Statement interface {
	stmtNode()
}

// Expression is a Lua expression.
type Expression interface {
	exprNode()
}

// LastStatement terminates a block: return, break or continue.
type LastStatement interface {
	lastStmtNode()
}

// Variable is an assignment target: an identifier, a field access or an
// index access.
type Variable interface {
	variableNode()
}

// TableEntry is a single entry of a table constructor.
type TableEntry interface {
	entryNode()
}

// Block is an ordered statement sequence with an optional terminator.
// Last is nil when the block does not end with return/break/continue.
type Block struct {
	Statements []Statement
	Last       LastStatement
}

// PushStatement appends a statement to the block.
func (b *Block) PushStatement(s Statement) {
	b.Statements = append(b.Statements, s)
}

// TypedIdentifier is a name with an optional type annotation. The
// annotation has no runtime meaning and is carried through unchanged.
type TypedIdentifier struct {
	Name string
	Type string // empty when unannotated
}

// ---------- Last statements ----------

// ReturnStatement terminates a block with zero or more values.
type ReturnStatement struct {
	Expressions []Expression
}

func (*ReturnStatement) lastStmtNode() {}

// BreakStatement exits the innermost loop.
type BreakStatement struct{}

func (*BreakStatement) lastStmtNode() {}

// ContinueStatement skips to the next iteration of the innermost loop.
// Only present in the extended dialect; rewritten away by remove_continue.
type ContinueStatement struct{}

func (*ContinueStatement) lastStmtNode() {}

// ---------- Statements ----------

// AssignStatement assigns values to one or more variables.
type AssignStatement struct {
	Variables []Variable
	Values    []Expression
}

func (*AssignStatement) stmtNode() {}

// CompoundAssignStatement is the extended `x += e` family.
type CompoundAssignStatement struct {
	Variable Variable
	Operator BinaryOperator
	Value    Expression
}

func (*CompoundAssignStatement) stmtNode() {}

// LocalAssignStatement declares locals with optional initial values.
type LocalAssignStatement struct {
	Variables []*TypedIdentifier
	Values    []Expression
}

func (*LocalAssignStatement) stmtNode() {}

// LocalFunctionStatement declares a local function.
type LocalFunctionStatement struct {
	Name       *TypedIdentifier
	Parameters []*TypedIdentifier
	IsVariadic bool
	Block      *Block
}

func (*LocalFunctionStatement) stmtNode() {}

// FunctionStatement declares a function on a (possibly dotted) name, with
// an optional `:method` suffix.
type FunctionStatement struct {
	Name       string
	Fields     []string
	Method     string
	Parameters []*TypedIdentifier
	IsVariadic bool
	Block      *Block
}

func (*FunctionStatement) stmtNode() {}

// CallStatement is a function call in statement position.
type CallStatement struct {
	Call *FunctionCall
}

func (*CallStatement) stmtNode() {}

// IfStatement is a chain of condition branches with an optional else block.
type IfStatement struct {
	Branches []*IfBranch
	Else     *Block
}

func (*IfStatement) stmtNode() {}

// IfBranch is one `if`/`elseif` arm.
type IfBranch struct {
	Condition Expression
	Block     *Block
}

// WhileStatement is a condition-first loop.
type WhileStatement struct {
	Condition Expression
	Block     *Block
}

func (*WhileStatement) stmtNode() {}

// RepeatStatement is a body-first loop; the condition sees the body scope.
type RepeatStatement struct {
	Block     *Block
	Condition Expression
}

func (*RepeatStatement) stmtNode() {}

// NumericForStatement is `for i = start, end[, step] do ... end`.
// Step is nil when omitted.
type NumericForStatement struct {
	Identifier *TypedIdentifier
	Start      Expression
	End        Expression
	Step       Expression
	Block      *Block
}

func (*NumericForStatement) stmtNode() {}

// GenericForStatement is `for a, b in e1[, e2, e3] do ... end`. The
// extended dialect allows a single iterated expression resolved through a
// metatable at runtime; remove_generalized_iteration lowers it to the
// classic three-value protocol.
type GenericForStatement struct {
	Identifiers []*TypedIdentifier
	Expressions []Expression
	Block       *Block
}

func (*GenericForStatement) stmtNode() {}

// DoStatement is a plain nested scope.
type DoStatement struct {
	Block *Block
}

func (*DoStatement) stmtNode() {}

// ---------- Expressions ----------

// NilExpression is the nil literal.
type NilExpression struct{}

func (*NilExpression) exprNode() {}

// BooleanExpression is true or false.
type BooleanExpression struct {
	Value bool
}

func (*BooleanExpression) exprNode() {}

// NumberExpression is a number literal.
type NumberExpression struct {
	Value float64
}

func (*NumberExpression) exprNode() {}

// StringExpression is a string literal holding the decoded value.
type StringExpression struct {
	Value string
}

func (*StringExpression) exprNode() {}

// VarargsExpression is `...`.
type VarargsExpression struct{}

func (*VarargsExpression) exprNode() {}

// Identifier is a name reference. It is also a valid assignment target.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()     {}
func (*Identifier) variableNode() {}

// UnaryExpression applies a unary operator.
type UnaryExpression struct {
	Operator   UnaryOperator
	Expression Expression
}

func (*UnaryExpression) exprNode() {}

// BinaryExpression applies a binary operator.
type BinaryExpression struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

func (*BinaryExpression) exprNode() {}

// ParentheseExpression is an explicit parenthesized expression. It is
// semantically relevant: parentheses truncate multiple values to one.
type ParentheseExpression struct {
	Expression Expression
}

func (*ParentheseExpression) exprNode() {}

// TableExpression is a table constructor.
type TableExpression struct {
	Entries []TableEntry
}

func (*TableExpression) exprNode() {}

// FunctionExpression is a function literal.
type FunctionExpression struct {
	Parameters []*TypedIdentifier
	IsVariadic bool
	Block      *Block
}

func (*FunctionExpression) exprNode() {}

// FunctionCall calls Prefix, or the method named Method on Prefix when
// Method is non-empty.
type FunctionCall struct {
	Prefix    Expression
	Method    string
	Arguments []Expression
}

func (*FunctionCall) exprNode() {}

// FieldExpression is `prefix.field`. It is also a valid assignment target.
type FieldExpression struct {
	Prefix Expression
	Field  string
}

func (*FieldExpression) exprNode()     {}
func (*FieldExpression) variableNode() {}

// IndexExpression is `prefix[index]`. It is also a valid assignment target.
type IndexExpression struct {
	Prefix Expression
	Index  Expression
}

func (*IndexExpression) exprNode()     {}
func (*IndexExpression) variableNode() {}

// ---------- Table entries ----------

// ValueEntry is a positional entry in a table constructor.
type ValueEntry struct {
	Value Expression
}

func (*ValueEntry) entryNode() {}

// IndexEntry is an explicit `[key] = value` entry.
type IndexEntry struct {
	Key   Expression
	Value Expression
}

func (*IndexEntry) entryNode() {}

// FieldEntry is a named `field = value` entry.
type FieldEntry struct {
	Field string
	Value Expression
}

func (*FieldEntry) entryNode() {}
