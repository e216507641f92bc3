package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeVariableBuilderSubstitutesPlaceholders(t *testing.T) {
	b := newRuntimeVariableBuilder("__{name}", "seed", []byte("source"))
	assert.Equal(t, "__iter", b.Build("iter"))
	assert.Equal(t, "__invar", b.Build("invar"))

	hashed := newRuntimeVariableBuilder("_{name}{hash}", "seed", []byte("source")).Build("x")
	assert.Regexp(t, `^_x[0-9a-f]{16}$`, hashed)
}

func TestRuntimeVariableBuilderIsDeterministic(t *testing.T) {
	first := newRuntimeVariableBuilder("{name}{hash}", "seed", []byte("source")).Build("v")
	second := newRuntimeVariableBuilder("{name}{hash}", "seed", []byte("source")).Build("v")
	assert.Equal(t, first, second)

	otherSeed := newRuntimeVariableBuilder("{name}{hash}", "other", []byte("source")).Build("v")
	assert.NotEqual(t, first, otherSeed)

	otherSource := newRuntimeVariableBuilder("{name}{hash}", "seed", []byte("changed")).Build("v")
	assert.NotEqual(t, first, otherSource)
}

func TestRuntimeVariableBuilderAvoidsReservedNames(t *testing.T) {
	b := newRuntimeVariableBuilder("{name}", "seed", nil, "_m", "_m2")
	assert.Equal(t, "_m3", b.Build("_m"))
	assert.Equal(t, "ok", b.Build("ok"))
}

func TestValidateRuntimeVariableFormat(t *testing.T) {
	assert.NoError(t, validateRuntimeVariableFormat("runtime_variable_format", "x{name}"))
	assert.NoError(t, validateRuntimeVariableFormat("runtime_variable_format", "{name}{hash}"))
	assert.EqualError(t,
		validateRuntimeVariableFormat("runtime_variable_format", "static{hash}"),
		"invalid value for field 'runtime_variable_format': missing '{name}' placeholder")
}
