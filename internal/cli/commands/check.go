package commands

import (
	"fmt"
	"sort"

	"github.com/luamend/luamend/internal/config"
	_ "github.com/luamend/luamend/pkg/rewrite/rules" // register rules
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Long: `Validate the configuration file: every listed rule must exist and
its settings must be accepted. Nothing is rewritten.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer
			styles := r.Styles()

			pipeline, err := config.BuildPipeline(cmdCtx.Cfg)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			rules := pipeline.Rules()
			r.Println(styles.Success.Render(fmt.Sprintf("Configuration OK (%d rules)", len(rules))))
			for _, rule := range rules {
				r.Println("  " + rule.Name())
				properties := rule.Properties()
				keys := make([]string, 0, len(properties))
				for key := range properties {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					r.Println(fmt.Sprintf("    %s = %v", key, properties[key]))
				}
			}
			return nil
		},
	}
}
