package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneBlockIsDeep(t *testing.T) {
	original := &Block{
		Statements: []Statement{
			&LocalAssignStatement{
				Variables: []*TypedIdentifier{{Name: "x"}},
				Values:    []Expression{&NumberExpression{Value: 1}},
			},
			&WhileStatement{
				Condition: &Identifier{Name: "x"},
				Block: &Block{
					Statements: []Statement{
						&CallStatement{Call: &FunctionCall{
							Prefix:    &Identifier{Name: "f"},
							Arguments: []Expression{&Identifier{Name: "x"}},
						}},
					},
					Last: &BreakStatement{},
				},
			},
		},
		Last: &ReturnStatement{Expressions: []Expression{&Identifier{Name: "x"}}},
	}

	clone := CloneBlock(original)
	require.NotSame(t, original, clone)
	require.Len(t, clone.Statements, 2)

	// Mutating the clone must not leak into the original.
	clone.Statements[0].(*LocalAssignStatement).Variables[0].Name = "y"
	clone.Statements[1].(*WhileStatement).Block.Last = nil
	clone.Last.(*ReturnStatement).Expressions[0].(*Identifier).Name = "z"

	assert.Equal(t, "x", original.Statements[0].(*LocalAssignStatement).Variables[0].Name)
	assert.IsType(t, &BreakStatement{}, original.Statements[1].(*WhileStatement).Block.Last)
	assert.Equal(t, "x", original.Last.(*ReturnStatement).Expressions[0].(*Identifier).Name)
}

func TestCloneExpressionCoversNesting(t *testing.T) {
	original := &BinaryExpression{
		Operator: BinaryAdd,
		Left: &UnaryExpression{
			Operator:   UnaryMinus,
			Expression: &NumberExpression{Value: 2},
		},
		Right: &IndexExpression{
			Prefix: &TableExpression{Entries: []TableEntry{
				&ValueEntry{Value: &StringExpression{Value: "a"}},
				&FieldEntry{Field: "k", Value: &BooleanExpression{Value: true}},
				&IndexEntry{Key: &NumberExpression{Value: 1}, Value: &NilExpression{}},
			}},
			Index: &NumberExpression{Value: 1},
		},
	}

	clone := CloneExpression(original).(*BinaryExpression)
	require.NotSame(t, original, clone)

	table := clone.Right.(*IndexExpression).Prefix.(*TableExpression)
	table.Entries[1].(*FieldEntry).Field = "changed"

	originalTable := original.Right.(*IndexExpression).Prefix.(*TableExpression)
	assert.Equal(t, "k", originalTable.Entries[1].(*FieldEntry).Field)
}

func TestCloneNilHandling(t *testing.T) {
	assert.Nil(t, CloneLastStatement(nil))

	block := &Block{}
	clone := CloneBlock(block)
	require.NotNil(t, clone)
	assert.Empty(t, clone.Statements)
	assert.Nil(t, clone.Last)
}

func TestPushStatement(t *testing.T) {
	b := &Block{}
	b.PushStatement(&DoStatement{Block: &Block{}})
	b.PushStatement(&CallStatement{Call: &FunctionCall{Prefix: &Identifier{Name: "f"}}})
	require.Len(t, b.Statements, 2)
}
