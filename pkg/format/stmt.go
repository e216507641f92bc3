package format

import "github.com/luamend/luamend/pkg/ast"

func (p *printer) blockContent(block *ast.Block) {
	for i, stmt := range block.Statements {
		if i > 0 {
			// A statement opening with a parenthese after one ending in a
			// prefix expression would parse as a call on that expression.
			if startsWithParenthese(stmt) && endsWithPrefix(block.Statements[i-1]) {
				p.write(";")
			}
			p.space()
		}
		p.statement(stmt)
	}
	if block.Last != nil {
		if len(block.Statements) > 0 {
			p.space()
		}
		p.lastStatement(block.Last)
	}
}

// block renders `<content>` surrounded by spaces, or nothing when empty,
// for use between block delimiters such as `do ... end`.
func (p *printer) block(b *ast.Block) {
	if len(b.Statements) == 0 && b.Last == nil {
		p.space()
		return
	}
	p.space()
	p.blockContent(b)
	p.space()
}

func (p *printer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		p.variables(s.Variables)
		p.space()
		p.write("=")
		p.space()
		p.expressions(s.Values)
	case *ast.CompoundAssignStatement:
		p.variable(s.Variable)
		p.space()
		p.write(s.Operator.String() + "=")
		p.space()
		p.expression(s.Value, 0)
	case *ast.LocalAssignStatement:
		p.write("local")
		p.space()
		for i, id := range s.Variables {
			if i > 0 {
				p.write(",")
				p.space()
			}
			p.typedIdentifier(id)
		}
		if len(s.Values) > 0 {
			p.space()
			p.write("=")
			p.space()
			p.expressions(s.Values)
		}
	case *ast.CallStatement:
		p.functionCall(s.Call)
	case *ast.DoStatement:
		p.write("do")
		p.block(s.Block)
		p.write("end")
	case *ast.WhileStatement:
		p.write("while")
		p.space()
		p.expression(s.Condition, 0)
		p.space()
		p.write("do")
		p.block(s.Block)
		p.write("end")
	case *ast.RepeatStatement:
		p.write("repeat")
		p.block(s.Block)
		p.write("until")
		p.space()
		p.expression(s.Condition, 0)
	case *ast.IfStatement:
		for i, branch := range s.Branches {
			if i == 0 {
				p.write("if")
			} else {
				p.space()
				p.write("elseif")
			}
			p.space()
			p.expression(branch.Condition, 0)
			p.space()
			p.write("then")
			p.block(branch.Block)
		}
		if s.Else != nil {
			p.write("else")
			p.block(s.Else)
		}
		p.write("end")
	case *ast.NumericForStatement:
		p.write("for")
		p.space()
		p.typedIdentifier(s.Identifier)
		p.space()
		p.write("=")
		p.space()
		p.expression(s.Start, 0)
		p.write(",")
		p.space()
		p.expression(s.End, 0)
		if s.Step != nil {
			p.write(",")
			p.space()
			p.expression(s.Step, 0)
		}
		p.space()
		p.write("do")
		p.block(s.Block)
		p.write("end")
	case *ast.GenericForStatement:
		p.write("for")
		p.space()
		for i, id := range s.Identifiers {
			if i > 0 {
				p.write(",")
				p.space()
			}
			p.typedIdentifier(id)
		}
		p.space()
		p.write("in")
		p.space()
		p.expressions(s.Expressions)
		p.space()
		p.write("do")
		p.block(s.Block)
		p.write("end")
	case *ast.FunctionStatement:
		p.write("function")
		p.space()
		p.write(s.Name)
		for _, field := range s.Fields {
			p.write(".")
			p.write(field)
		}
		if s.Method != "" {
			p.write(":")
			p.write(s.Method)
		}
		p.functionBody(s.Parameters, s.IsVariadic, s.Block)
	case *ast.LocalFunctionStatement:
		p.write("local")
		p.space()
		p.write("function")
		p.space()
		p.typedIdentifier(s.Name)
		p.functionBody(s.Parameters, s.IsVariadic, s.Block)
	}
}

func (p *printer) lastStatement(last ast.LastStatement) {
	switch s := last.(type) {
	case *ast.ReturnStatement:
		p.write("return")
		if len(s.Expressions) > 0 {
			p.space()
			p.expressions(s.Expressions)
		}
	case *ast.BreakStatement:
		p.write("break")
	case *ast.ContinueStatement:
		p.write("continue")
	}
}

func (p *printer) functionBody(parameters []*ast.TypedIdentifier, variadic bool, block *ast.Block) {
	p.write("(")
	for i, param := range parameters {
		if i > 0 {
			p.write(",")
			p.space()
		}
		p.typedIdentifier(param)
	}
	if variadic {
		if len(parameters) > 0 {
			p.write(",")
			p.space()
		}
		p.write("...")
	}
	p.write(")")
	p.block(block)
	p.write("end")
}

func (p *printer) typedIdentifier(id *ast.TypedIdentifier) {
	p.write(id.Name)
	if id.Type != "" {
		p.write(":")
		p.space()
		p.write(id.Type)
	}
}

func (p *printer) variables(variables []ast.Variable) {
	for i, v := range variables {
		if i > 0 {
			p.write(",")
			p.space()
		}
		p.variable(v)
	}
}

func (p *printer) variable(v ast.Variable) {
	p.expression(v.(ast.Expression), 0)
}

func (p *printer) expressions(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(",")
			p.space()
		}
		p.expression(e, 0)
	}
}
