package rules

import (
	"testing"

	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/format"
	"github.com/luamend/luamend/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfiguredRemoveGeneralizedIteration(t *testing.T) *RemoveGeneralizedIteration {
	t.Helper()
	rule := NewRemoveGeneralizedIteration()
	require.NoError(t, rule.Configure(rewrite.Properties{
		"runtime_variable_format": "__{name}",
	}))
	return rule
}

func TestRemoveGeneralizedIterationLowersSingleExpressionLoop(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.GenericForStatement{
			Identifiers: []*ast.TypedIdentifier{{Name: "k"}, {Name: "v"}},
			Expressions: []ast.Expression{ident("t")},
			Block:       &ast.Block{Statements: []ast.Statement{callStmt("f", ident("k"))}},
		},
	}}

	newConfiguredRemoveGeneralizedIteration(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"do local __iter, __invar, __control = t "+
			"if type(__iter) == 'table' then "+
			"local _m = getmetatable(__iter) "+
			"if type(_m) == 'table' and type(_m.__iter) == 'function' then "+
			"__iter, __invar, __control = _m.__iter(__iter) "+
			"else __iter, __invar, __control = pairs(__iter) end end "+
			"for k, v in __iter, __invar, __control do f(k) end end",
		format.Block(block))
}

func TestRemoveGeneralizedIterationLeavesMultiExpressionLoopsAlone(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.GenericForStatement{
			Identifiers: []*ast.TypedIdentifier{{Name: "k"}, {Name: "v"}},
			Expressions: []ast.Expression{ident("iter"), ident("t")},
			Block:       &ast.Block{},
		},
		&ast.GenericForStatement{
			Identifiers: []*ast.TypedIdentifier{{Name: "k"}},
			Expressions: []ast.Expression{call("next", ident("t")), ident("t"), &ast.NilExpression{}},
			Block:       &ast.Block{},
		},
	}}

	newConfiguredRemoveGeneralizedIteration(t).ApplyFlawless(block, testContext("src"))

	assert.Equal(t,
		"for k, v in iter, t do end for k in next(t), t, nil do end",
		format.Block(block))
}

func TestRemoveGeneralizedIterationReachesNestedLoops(t *testing.T) {
	inner := &ast.GenericForStatement{
		Identifiers: []*ast.TypedIdentifier{{Name: "j"}},
		Expressions: []ast.Expression{ident("u")},
		Block:       &ast.Block{},
	}
	outer := &ast.GenericForStatement{
		Identifiers: []*ast.TypedIdentifier{{Name: "i"}},
		Expressions: []ast.Expression{ident("t")},
		Block:       &ast.Block{Statements: []ast.Statement{inner}},
	}
	block := &ast.Block{Statements: []ast.Statement{outer}}

	newConfiguredRemoveGeneralizedIteration(t).ApplyFlawless(block, testContext("src"))

	// Both loops now carry the full iterator triple.
	assert.Len(t, outer.Expressions, 3)
	assert.Len(t, inner.Expressions, 3)
	assert.IsType(t, &ast.DoStatement{}, block.Statements[0])
}

func TestRemoveGeneralizedIterationEvaluatesIteratedExpressionOnce(t *testing.T) {
	block := &ast.Block{Statements: []ast.Statement{
		&ast.GenericForStatement{
			Identifiers: []*ast.TypedIdentifier{{Name: "k"}},
			Expressions: []ast.Expression{call("build")},
			Block:       &ast.Block{},
		},
	}}

	newConfiguredRemoveGeneralizedIteration(t).ApplyFlawless(block, testContext("src"))

	out := format.Block(block)
	assert.Equal(t, 1, countOccurrences(out, "build()"))
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}

func TestRemoveGeneralizedIterationConfigure(t *testing.T) {
	rule := NewRemoveGeneralizedIteration()

	err := rule.Configure(rewrite.Properties{"bogus": 1})
	assert.EqualError(t, err, "unexpected field 'bogus'")

	err = rule.Configure(rewrite.Properties{"runtime_variable_format": "static"})
	assert.EqualError(t, err, "invalid value for field 'runtime_variable_format': missing '{name}' placeholder")
}

func TestRemoveGeneralizedIterationPropertiesRoundTrip(t *testing.T) {
	rule := NewRemoveGeneralizedIteration()
	assert.Empty(t, rule.Properties())

	require.NoError(t, rule.Configure(rewrite.Properties{
		"runtime_variable_format": "_v_{name}{hash}",
	}))
	properties := rule.Properties()
	assert.Equal(t, rewrite.Properties{"runtime_variable_format": "_v_{name}{hash}"}, properties)

	fresh := NewRemoveGeneralizedIteration()
	require.NoError(t, fresh.Configure(properties))
	assert.Equal(t, properties, fresh.Properties())
}
