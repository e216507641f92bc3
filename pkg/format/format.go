// Package format renders syntax trees back to Lua source.
//
// Output is deterministic and compact: statements are joined by single
// spaces and operators are surrounded by spaces. The printer inserts
// extra separators only where adjacent tokens would otherwise merge.
package format

import "github.com/luamend/luamend/pkg/ast"

// Chunk renders a top-level block followed by a trailing newline.
func Chunk(block *ast.Block) string {
	p := newPrinter()
	p.blockContent(block)
	out := p.String()
	if out == "" {
		return ""
	}
	return out + "\n"
}

// Block renders the statements of a block joined by single spaces.
func Block(block *ast.Block) string {
	p := newPrinter()
	p.blockContent(block)
	return p.String()
}

// Statement renders a single statement.
func Statement(stmt ast.Statement) string {
	p := newPrinter()
	p.statement(stmt)
	return p.String()
}

// Expression renders a single expression.
func Expression(expr ast.Expression) string {
	p := newPrinter()
	p.expression(expr, 0)
	return p.String()
}
