package ast

// CloneBlock returns a deep copy of a block. Rewrite rules that duplicate
// a subtree (the single-pass loop wrapper) must never alias nodes between
// the copy and the original.
func CloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	clone := &Block{Last: CloneLastStatement(b.Last)}
	if b.Statements != nil {
		clone.Statements = make([]Statement, len(b.Statements))
		for i, s := range b.Statements {
			clone.Statements[i] = CloneStatement(s)
		}
	}
	return clone
}

// CloneLastStatement returns a deep copy of a block terminator.
func CloneLastStatement(last LastStatement) LastStatement {
	switch l := last.(type) {
	case nil:
		return nil
	case *ReturnStatement:
		return &ReturnStatement{Expressions: cloneExpressions(l.Expressions)}
	case *BreakStatement:
		return &BreakStatement{}
	case *ContinueStatement:
		return &ContinueStatement{}
	}
	return nil
}

// CloneStatement returns a deep copy of a statement.
func CloneStatement(s Statement) Statement {
	switch stmt := s.(type) {
	case *AssignStatement:
		return &AssignStatement{
			Variables: cloneVariables(stmt.Variables),
			Values:    cloneExpressions(stmt.Values),
		}
	case *CompoundAssignStatement:
		return &CompoundAssignStatement{
			Variable: CloneVariable(stmt.Variable),
			Operator: stmt.Operator,
			Value:    CloneExpression(stmt.Value),
		}
	case *LocalAssignStatement:
		return &LocalAssignStatement{
			Variables: cloneTypedIdentifiers(stmt.Variables),
			Values:    cloneExpressions(stmt.Values),
		}
	case *LocalFunctionStatement:
		return &LocalFunctionStatement{
			Name:       CloneTypedIdentifier(stmt.Name),
			Parameters: cloneTypedIdentifiers(stmt.Parameters),
			IsVariadic: stmt.IsVariadic,
			Block:      CloneBlock(stmt.Block),
		}
	case *FunctionStatement:
		clone := &FunctionStatement{
			Name:       stmt.Name,
			Method:     stmt.Method,
			Parameters: cloneTypedIdentifiers(stmt.Parameters),
			IsVariadic: stmt.IsVariadic,
			Block:      CloneBlock(stmt.Block),
		}
		clone.Fields = append(clone.Fields, stmt.Fields...)
		return clone
	case *CallStatement:
		return &CallStatement{Call: cloneFunctionCall(stmt.Call)}
	case *IfStatement:
		clone := &IfStatement{Else: CloneBlock(stmt.Else)}
		for _, branch := range stmt.Branches {
			clone.Branches = append(clone.Branches, &IfBranch{
				Condition: CloneExpression(branch.Condition),
				Block:     CloneBlock(branch.Block),
			})
		}
		return clone
	case *WhileStatement:
		return &WhileStatement{
			Condition: CloneExpression(stmt.Condition),
			Block:     CloneBlock(stmt.Block),
		}
	case *RepeatStatement:
		return &RepeatStatement{
			Block:     CloneBlock(stmt.Block),
			Condition: CloneExpression(stmt.Condition),
		}
	case *NumericForStatement:
		return &NumericForStatement{
			Identifier: CloneTypedIdentifier(stmt.Identifier),
			Start:      CloneExpression(stmt.Start),
			End:        CloneExpression(stmt.End),
			Step:       CloneExpression(stmt.Step),
			Block:      CloneBlock(stmt.Block),
		}
	case *GenericForStatement:
		return &GenericForStatement{
			Identifiers: cloneTypedIdentifiers(stmt.Identifiers),
			Expressions: cloneExpressions(stmt.Expressions),
			Block:       CloneBlock(stmt.Block),
		}
	case *DoStatement:
		return &DoStatement{Block: CloneBlock(stmt.Block)}
	}
	return nil
}

// CloneExpression returns a deep copy of an expression.
func CloneExpression(e Expression) Expression {
	switch expr := e.(type) {
	case nil:
		return nil
	case *NilExpression:
		return &NilExpression{}
	case *BooleanExpression:
		return &BooleanExpression{Value: expr.Value}
	case *NumberExpression:
		return &NumberExpression{Value: expr.Value}
	case *StringExpression:
		return &StringExpression{Value: expr.Value}
	case *VarargsExpression:
		return &VarargsExpression{}
	case *Identifier:
		return &Identifier{Name: expr.Name}
	case *UnaryExpression:
		return &UnaryExpression{
			Operator:   expr.Operator,
			Expression: CloneExpression(expr.Expression),
		}
	case *BinaryExpression:
		return &BinaryExpression{
			Operator: expr.Operator,
			Left:     CloneExpression(expr.Left),
			Right:    CloneExpression(expr.Right),
		}
	case *ParentheseExpression:
		return &ParentheseExpression{Expression: CloneExpression(expr.Expression)}
	case *TableExpression:
		clone := &TableExpression{}
		for _, entry := range expr.Entries {
			clone.Entries = append(clone.Entries, CloneTableEntry(entry))
		}
		return clone
	case *FunctionExpression:
		return &FunctionExpression{
			Parameters: cloneTypedIdentifiers(expr.Parameters),
			IsVariadic: expr.IsVariadic,
			Block:      CloneBlock(expr.Block),
		}
	case *FunctionCall:
		return cloneFunctionCall(expr)
	case *FieldExpression:
		return &FieldExpression{Prefix: CloneExpression(expr.Prefix), Field: expr.Field}
	case *IndexExpression:
		return &IndexExpression{
			Prefix: CloneExpression(expr.Prefix),
			Index:  CloneExpression(expr.Index),
		}
	}
	return nil
}

// CloneTableEntry returns a deep copy of a table constructor entry.
func CloneTableEntry(entry TableEntry) TableEntry {
	switch en := entry.(type) {
	case *ValueEntry:
		return &ValueEntry{Value: CloneExpression(en.Value)}
	case *IndexEntry:
		return &IndexEntry{Key: CloneExpression(en.Key), Value: CloneExpression(en.Value)}
	case *FieldEntry:
		return &FieldEntry{Field: en.Field, Value: CloneExpression(en.Value)}
	}
	return nil
}

// CloneVariable returns a deep copy of an assignment target.
func CloneVariable(v Variable) Variable {
	switch target := v.(type) {
	case *Identifier:
		return &Identifier{Name: target.Name}
	case *FieldExpression:
		return &FieldExpression{Prefix: CloneExpression(target.Prefix), Field: target.Field}
	case *IndexExpression:
		return &IndexExpression{
			Prefix: CloneExpression(target.Prefix),
			Index:  CloneExpression(target.Index),
		}
	}
	return nil
}

// CloneTypedIdentifier returns a copy of a typed identifier.
func CloneTypedIdentifier(id *TypedIdentifier) *TypedIdentifier {
	if id == nil {
		return nil
	}
	clone := *id
	return &clone
}

func cloneFunctionCall(call *FunctionCall) *FunctionCall {
	if call == nil {
		return nil
	}
	return &FunctionCall{
		Prefix:    CloneExpression(call.Prefix),
		Method:    call.Method,
		Arguments: cloneExpressions(call.Arguments),
	}
}

func cloneExpressions(exprs []Expression) []Expression {
	if exprs == nil {
		return nil
	}
	clones := make([]Expression, len(exprs))
	for i, e := range exprs {
		clones[i] = CloneExpression(e)
	}
	return clones
}

func cloneVariables(vars []Variable) []Variable {
	if vars == nil {
		return nil
	}
	clones := make([]Variable, len(vars))
	for i, v := range vars {
		clones[i] = CloneVariable(v)
	}
	return clones
}

func cloneTypedIdentifiers(ids []*TypedIdentifier) []*TypedIdentifier {
	if ids == nil {
		return nil
	}
	clones := make([]*TypedIdentifier, len(ids))
	for i, id := range ids {
		clones[i] = CloneTypedIdentifier(id)
	}
	return clones
}
