// Package rewrite defines the rule contract and the sequential pipeline
// that applies configured rules to a parsed Lua block.
package rewrite

import "github.com/luamend/luamend/pkg/ast"

// Rule is a single source-to-source rewrite.
//
// Configure validates the full property map before the rule is permitted
// to touch any tree: an unrecognized key, a missing required key or a
// wrongly typed value fails with an error naming the offending key, and no
// partial configuration is kept.
type Rule interface {
	// Name returns the stable rule name used in configuration files.
	Name() string

	// Description returns a human-readable summary.
	Description() string

	// ConfigKeys returns the property keys the rule recognizes.
	ConfigKeys() []string

	// Configure applies a property map. Validation is exhaustive and
	// atomic.
	Configure(properties Properties) error

	// Properties returns the rule's current non-default configuration.
	// The result round-trips through Configure.
	Properties() Properties

	// Apply rewrites the block in place.
	Apply(block *ast.Block, ctx *Context) error
}

// FlawlessRule is a rewrite that always succeeds on a well-formed tree.
// Any internal invariant violation is a defect, not a reportable error.
type FlawlessRule interface {
	Name() string
	Description() string
	ConfigKeys() []string
	Configure(properties Properties) error
	Properties() Properties
	ApplyFlawless(block *ast.Block, ctx *Context)
}

// Flawless adapts a FlawlessRule to the Rule interface.
func Flawless(r FlawlessRule) Rule {
	return flawlessAdapter{r}
}

type flawlessAdapter struct {
	FlawlessRule
}

func (a flawlessAdapter) Apply(block *ast.Block, ctx *Context) error {
	a.ApplyFlawless(block, ctx)
	return nil
}

// Context carries per-file information supplied to every rule. The
// original source bytes are used only for deterministic name derivation,
// never for semantics.
type Context struct {
	// Path is the file's project-relative path.
	Path string

	// ProjectRoot is the absolute project root directory.
	ProjectRoot string

	// OriginalSource holds the file's source bytes as parsed.
	OriginalSource []byte
}
