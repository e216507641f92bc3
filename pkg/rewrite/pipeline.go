package rewrite

import (
	"fmt"
	"log/slog"

	"github.com/luamend/luamend/pkg/ast"
)

// Pipeline applies a sequence of configured rules to a block, strictly in
// order: rule N sees only the output of rule N-1. The block has exactly
// one active mutator at a time; no rule retains a reference into the tree
// after its Apply returns.
type Pipeline struct {
	rules  []Rule
	logger *slog.Logger
}

// NewPipeline builds a pipeline over already-configured rules.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{
		rules:  rules,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the pipeline logger and returns the pipeline.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Rules returns the configured rules in application order.
func (p *Pipeline) Rules() []Rule {
	return p.rules
}

// Run rewrites the block in place. The first failing rule stops the
// pipeline; its error is wrapped with the rule name.
func (p *Pipeline) Run(block *ast.Block, ctx *Context) error {
	for _, rule := range p.rules {
		p.logger.Debug("applying rule", "rule", rule.Name(), "path", ctx.Path)
		if err := rule.Apply(block, ctx); err != nil {
			return fmt.Errorf("rule '%s': %w", rule.Name(), err)
		}
	}
	return nil
}
