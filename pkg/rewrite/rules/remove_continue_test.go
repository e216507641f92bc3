package rules

import (
	"testing"

	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/format"
	"github.com/luamend/luamend/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfiguredRemoveContinue(t *testing.T) *RemoveContinue {
	t.Helper()
	rule := NewRemoveContinue()
	require.NoError(t, rule.Configure(rewrite.Properties{
		"runtime_variable_format": "__{name}",
	}))
	return rule
}

func TestRemoveContinueWithoutBreaks(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{
				Statements: []ast.Statement{callStmt("f")},
				Last:       &ast.ContinueStatement{},
			},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"while x do repeat f() break until true end",
		format.Block(block))
}

func TestRemoveContinueMarksBreakWhenBreaksAreRarer(t *testing.T) {
	// One continue, one break: the break side is marked.
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{Statements: []ast.Statement{
				ifThen(ident("a"), &ast.Block{Last: &ast.ContinueStatement{}}),
				ifThen(ident("b"), &ast.Block{Last: &ast.BreakStatement{}}),
			}},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"while x do local __break = false "+
			"repeat if a then break end if b then __break = true break end until true "+
			"if __break then break end end",
		format.Block(block))
}

func TestRemoveContinueMarksContinueWhenContinuesAreRarer(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{Statements: []ast.Statement{
				ifThen(ident("a"), &ast.Block{Last: &ast.ContinueStatement{}}),
				ifThen(ident("b"), &ast.Block{Last: &ast.BreakStatement{}}),
				ifThen(ident("c"), &ast.Block{Last: &ast.BreakStatement{}}),
			}},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"while x do local __continue = false "+
			"repeat if a then __continue = true break end if b then break end if c then break end until true "+
			"if not __continue then break end end",
		format.Block(block))
}

func TestRemoveContinueCountsElseBranch(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{Statements: []ast.Statement{
				&ast.IfStatement{
					Branches: []*ast.IfBranch{{
						Condition: ident("a"),
						Block:     &ast.Block{Statements: []ast.Statement{callStmt("f")}},
					}},
					Else: &ast.Block{Last: &ast.ContinueStatement{}},
				},
			}},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"while x do repeat if a then f() else break end until true end",
		format.Block(block))
}

func TestRemoveContinueLeavesNestedLoopTerminatorsAlone(t *testing.T) {
	// The outer loop has no continue of its own; only the inner loop is
	// rewritten.
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{Statements: []ast.Statement{
				&ast.WhileStatement{
					Condition: ident("y"),
					Block: &ast.Block{
						Statements: []ast.Statement{callStmt("g")},
						Last:       &ast.ContinueStatement{},
					},
				},
			}},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"while x do while y do repeat g() break until true end end",
		format.Block(block))
}

func TestRemoveContinueHandlesAllLoopKinds(t *testing.T) {
	loops := []ast.Statement{
		&ast.NumericForStatement{
			Identifier: &ast.TypedIdentifier{Name: "i"},
			Start:      num(1),
			End:        num(3),
			Block:      &ast.Block{Last: &ast.ContinueStatement{}},
		},
		&ast.GenericForStatement{
			Identifiers: []*ast.TypedIdentifier{{Name: "k"}},
			Expressions: []ast.Expression{call("pairs", ident("t"))},
			Block:       &ast.Block{Last: &ast.ContinueStatement{}},
		},
		&ast.RepeatStatement{
			Block:     &ast.Block{Last: &ast.ContinueStatement{}},
			Condition: ident("done"),
		},
	}
	block := &ast.Block{Statements: loops}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"for i = 1, 3 do repeat break until true end "+
			"for k in pairs(t) do repeat break until true end "+
			"repeat repeat break until true until done",
		format.Block(block))
}

func TestRemoveContinueIsIdempotent(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{
				Statements: []ast.Statement{callStmt("f")},
				Last:       &ast.ContinueStatement{},
			},
		},
	}}

	rule := newConfiguredRemoveContinue(t)
	rule.ApplyFlawless(block, testContext("src"))
	first := format.Block(block)
	rule.ApplyFlawless(block, testContext("src"))
	assert.Equal(t, first, format.Block(block))
}

func TestRemoveContinueUntouchedWithoutContinue(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{
				Statements: []ast.Statement{callStmt("f")},
				Last:       &ast.BreakStatement{},
			},
		},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))
	assert.Equal(t, "while x do f() break end", format.Block(block))
}

func TestRemoveContinueNamesAreDeterministic(t *testing.T) {
	build := func() *ast.Block {
		return &ast.Block{Statements: []ast.Statement{
			&ast.WhileStatement{
				Condition: ident("x"),
				Block: &ast.Block{Statements: []ast.Statement{
					ifThen(ident("a"), &ast.Block{Last: &ast.ContinueStatement{}}),
					ifThen(ident("b"), &ast.Block{Last: &ast.BreakStatement{}}),
				}},
			},
		}}
	}

	rule := NewRemoveContinue()
	first, second := build(), build()
	rule.ApplyFlawless(first, testContext("same source"))
	rule.ApplyFlawless(second, testContext("same source"))
	assert.Equal(t, format.Block(first), format.Block(second))
	assert.NotContains(t, format.Block(first), "{hash}")
	assert.NotContains(t, format.Block(first), "{name}")

	other := build()
	rule.ApplyFlawless(other, testContext("different source"))
	assert.NotEqual(t, format.Block(first), format.Block(other))
}

func TestRemoveContinueConfigure(t *testing.T) {
	rule := NewRemoveContinue()

	err := rule.Configure(rewrite.Properties{"bogus": 1})
	assert.EqualError(t, err, "unexpected field 'bogus'")

	err = rule.Configure(rewrite.Properties{"runtime_variable_format": 1})
	assert.EqualError(t, err, "unexpected type for field 'runtime_variable_format': expected string")

	err = rule.Configure(rewrite.Properties{"runtime_variable_format": "no_placeholder"})
	assert.EqualError(t, err, "invalid value for field 'runtime_variable_format': missing '{name}' placeholder")
}

func TestRemoveContinueConfigureIsAtomic(t *testing.T) {
	rule := NewRemoveContinue()
	require.NoError(t, rule.Configure(rewrite.Properties{
		"runtime_variable_format": "__{name}",
	}))

	// A failing reconfiguration must not keep any partial state.
	err := rule.Configure(rewrite.Properties{
		"runtime_variable_format": "other_{name}",
		"bogus":                   true,
	})
	require.Error(t, err)

	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{
			Condition: ident("x"),
			Block: &ast.Block{Statements: []ast.Statement{
				ifThen(ident("a"), &ast.Block{Last: &ast.ContinueStatement{}}),
				ifThen(ident("b"), &ast.Block{Last: &ast.BreakStatement{}}),
			}},
		},
	}}
	rule.ApplyFlawless(block, testContext("src"))
	out := format.Block(block)
	assert.Contains(t, out, "__break")
	assert.NotContains(t, out, "other_break")
}

func TestRemoveContinuePropertiesRoundTrip(t *testing.T) {
	rule := NewRemoveContinue()
	assert.Empty(t, rule.Properties())

	require.NoError(t, rule.Configure(rewrite.Properties{
		"runtime_variable_format": "__{name}",
	}))
	properties := rule.Properties()
	assert.Equal(t, rewrite.Properties{"runtime_variable_format": "__{name}"}, properties)

	fresh := NewRemoveContinue()
	require.NoError(t, fresh.Configure(properties))
	assert.Equal(t, properties, fresh.Properties())
}

func TestRemoveContinueWrapperBodyIsDetached(t *testing.T) {
	original := callStmt("f")
	body := &ast.Block{
		Statements: []ast.Statement{original},
		Last:       &ast.ContinueStatement{},
	}
	block := &ast.Block{Statements: []ast.Statement{
		&ast.WhileStatement{Condition: ident("x"), Block: body},
	}}

	newConfiguredRemoveContinue(t).ApplyFlawless(block, testContext("src"))

	repeatStmt, ok := body.Statements[0].(*ast.RepeatStatement)
	require.True(t, ok)
	assert.NotSame(t, original, repeatStmt.Block.Statements[0])
	assert.Equal(t, "while x do repeat f() break until true end", format.Block(block))
}
