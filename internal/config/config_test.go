package config

import (
	"testing"

	_ "github.com/luamend/luamend/pkg/rewrite/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleConfigsDefaultsWhenEmpty(t *testing.T) {
	cfg := &Config{}

	configs, err := cfg.RuleConfigs()
	require.NoError(t, err)

	names := make([]string, len(configs))
	for i, rc := range configs {
		names[i] = rc.Name
		assert.Empty(t, rc.Properties)
	}
	assert.Equal(t, DefaultRuleNames(), names)
}

func TestRuleConfigsNormalizesEntries(t *testing.T) {
	cfg := &Config{Rules: []any{
		"remove_redeclared_keys",
		map[string]any{
			"rule":                    "remove_continue",
			"runtime_variable_format": "__{name}",
		},
	}}

	configs, err := cfg.RuleConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "remove_redeclared_keys", configs[0].Name)
	assert.Empty(t, configs[0].Properties)

	assert.Equal(t, "remove_continue", configs[1].Name)
	assert.Equal(t, "__{name}", configs[1].Properties["runtime_variable_format"])
	assert.NotContains(t, configs[1].Properties, "rule")
}

func TestRuleConfigsRejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		entry   any
		wantErr string
	}{
		{"missing rule field", map[string]any{"setting": 1}, "rules[0]: rule entry is missing the 'rule' field"},
		{"empty rule name", map[string]any{"rule": ""}, "rules[0]: rule entry is missing the 'rule' field"},
		{"wrong type", 42, "rules[0]: rule entry must be a name or a mapping, got int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Rules: []any{tt.entry}}
			_, err := cfg.RuleConfigs()
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestBuildPipeline(t *testing.T) {
	cfg := &Config{Rules: []any{
		"remove_continue",
		map[string]any{
			"rule":                    "remove_generalized_iteration",
			"runtime_variable_format": "_v_{name}{hash}",
		},
	}}

	pipeline, err := BuildPipeline(cfg)
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
}

func TestBuildPipelineUnknownRule(t *testing.T) {
	cfg := &Config{Rules: []any{"no_such_rule"}}

	_, err := BuildPipeline(cfg)
	assert.EqualError(t, err, "unknown rule 'no_such_rule'")
}

func TestBuildPipelineInvalidSetting(t *testing.T) {
	cfg := &Config{Rules: []any{
		map[string]any{"rule": "remove_continue", "bogus": true},
	}}

	_, err := BuildPipeline(cfg)
	assert.EqualError(t, err, "rule 'remove_continue': unexpected field 'bogus'")
}
