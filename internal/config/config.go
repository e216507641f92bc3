// Package config loads luamend project configuration.
//
// Configuration is layered, from lowest to highest precedence: built-in
// defaults, a luamend.yaml (or .yml) file, LUAMEND_ environment variables,
// and command line flags.
package config

import (
	"fmt"

	"github.com/luamend/luamend/pkg/rewrite"
)

// Default values applied before any configuration source is loaded.
const (
	DefaultOutput = "text"
)

// DefaultExtensions lists the file extensions processed when walking
// directories.
var DefaultExtensions = []string{".lua", ".luau"}

// Config is the resolved configuration.
type Config struct {
	// ProjectRoot is the directory containing the config file, or the
	// working directory when none was found. Set by the loader.
	ProjectRoot string `koanf:"-"`

	Verbose    bool     `koanf:"verbose"`
	Output     string   `koanf:"output"`
	Extensions []string `koanf:"extensions"`

	// Rules holds the raw rule list as written in the config file: each
	// entry is either a rule name or a map carrying a "rule" key plus the
	// rule's settings. Use RuleConfigs to normalize it.
	Rules []any `koanf:"rules"`
}

// RuleConfig is one normalized rule entry.
type RuleConfig struct {
	Name       string
	Properties rewrite.Properties
}

// DefaultRuleNames is the rule set applied when the configuration does
// not list any rules.
func DefaultRuleNames() []string {
	return []string{
		"remove_continue",
		"remove_generalized_iteration",
		"remove_redeclared_keys",
	}
}

// RuleConfigs normalizes the raw rule list. When the list is empty the
// default rule set is returned.
func (c *Config) RuleConfigs() ([]RuleConfig, error) {
	if len(c.Rules) == 0 {
		names := DefaultRuleNames()
		configs := make([]RuleConfig, len(names))
		for i, name := range names {
			configs[i] = RuleConfig{Name: name, Properties: rewrite.Properties{}}
		}
		return configs, nil
	}

	configs := make([]RuleConfig, 0, len(c.Rules))
	for i, entry := range c.Rules {
		rc, err := parseRuleEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		configs = append(configs, rc)
	}
	return configs, nil
}

func parseRuleEntry(entry any) (RuleConfig, error) {
	switch v := entry.(type) {
	case string:
		return RuleConfig{Name: v, Properties: rewrite.Properties{}}, nil
	case map[string]any:
		name, ok := v["rule"].(string)
		if !ok || name == "" {
			return RuleConfig{}, fmt.Errorf("rule entry is missing the 'rule' field")
		}
		properties := make(rewrite.Properties, len(v)-1)
		for key, value := range v {
			if key == "rule" {
				continue
			}
			properties[key] = value
		}
		return RuleConfig{Name: name, Properties: properties}, nil
	default:
		return RuleConfig{}, fmt.Errorf("rule entry must be a name or a mapping, got %T", entry)
	}
}

// BuildPipeline instantiates and configures every listed rule, failing on
// the first unknown rule or invalid setting.
func BuildPipeline(cfg *Config) (*rewrite.Pipeline, error) {
	configs, err := cfg.RuleConfigs()
	if err != nil {
		return nil, err
	}

	rules := make([]rewrite.Rule, 0, len(configs))
	for _, rc := range configs {
		rule, err := rewrite.New(rc.Name)
		if err != nil {
			return nil, err
		}
		if err := rule.Configure(rc.Properties); err != nil {
			return nil, fmt.Errorf("rule '%s': %w", rc.Name, err)
		}
		rules = append(rules, rule)
	}
	return rewrite.NewPipeline(rules...), nil
}
