package rules

import (
	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/rewrite"
)

func num(v float64) ast.Expression     { return &ast.NumberExpression{Value: v} }
func str(v string) ast.Expression      { return &ast.StringExpression{Value: v} }
func ident(name string) ast.Expression { return &ast.Identifier{Name: name} }

func call(name string, args ...ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{Prefix: &ast.Identifier{Name: name}, Arguments: args}
}

func callStmt(name string, args ...ast.Expression) ast.Statement {
	return &ast.CallStatement{Call: call(name, args...)}
}

func ifThen(condition ast.Expression, block *ast.Block) *ast.IfStatement {
	return &ast.IfStatement{Branches: []*ast.IfBranch{{Condition: condition, Block: block}}}
}

func localTable(entries ...ast.TableEntry) *ast.Block {
	return &ast.Block{Statements: []ast.Statement{
		&ast.LocalAssignStatement{
			Variables: []*ast.TypedIdentifier{{Name: "a"}},
			Values:    []ast.Expression{&ast.TableExpression{Entries: entries}},
		},
	}}
}

func value(e ast.Expression) ast.TableEntry { return &ast.ValueEntry{Value: e} }

func index(key, val ast.Expression) ast.TableEntry {
	return &ast.IndexEntry{Key: key, Value: val}
}

func field(name string, val ast.Expression) ast.TableEntry {
	return &ast.FieldEntry{Field: name, Value: val}
}

func testContext(source string) *rewrite.Context {
	return &rewrite.Context{Path: "test.lua", OriginalSource: []byte(source)}
}
