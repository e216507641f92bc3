package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/luamend/luamend/internal/cli/output"
	"github.com/luamend/luamend/pkg/rewrite"
	_ "github.com/luamend/luamend/pkg/rewrite/rules" // register rules
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available rewrite rules",
		Long: `List all available rewrite rules with their settings.

Pass a rule name to show details for a single rule.`,
		Example: `  # List all rules
  luamend rules

  # Show details for a specific rule
  luamend rules remove_continue

  # Output as JSON
  luamend rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// ruleInfo describes a registered rule.
type ruleInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Settings    []string `json:"settings,omitempty"`
}

func allRuleInfos() ([]ruleInfo, error) {
	names := rewrite.Names()
	infos := make([]ruleInfo, 0, len(names))
	for _, name := range names {
		rule, err := rewrite.New(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ruleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Settings:    rule.ConfigKeys(),
		})
	}
	return infos, nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	infos, err := allRuleInfos()
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Out())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case output.ModeMarkdown:
		r.Println("# Rewrite Rules")
		r.Println("")
		r.Println("| Rule | Description | Settings |")
		r.Println("| --- | --- | --- |")
		for _, info := range infos {
			r.Printf("| %s | %s | %s |\n", info.Name, info.Description, strings.Join(info.Settings, ", "))
		}
		return nil
	default:
		return listRulesText(r, infos)
	}
}

func listRulesText(r *output.Renderer, infos []ruleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Rewrite Rules"))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Description", "Settings"})
	for _, info := range infos {
		settings := strings.Join(info.Settings, "\n")
		if settings == "" {
			settings = "-"
		}
		t.AppendRow(table.Row{info.Name, info.Description, settings})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'luamend rules <rule-name>' for details"))
	return nil
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, err := rewrite.New(name)
	if err != nil {
		return err
	}
	info := ruleInfo{Name: rule.Name(), Description: rule.Description(), Settings: rule.ConfigKeys()}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Out())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n%s\n", info.Name, info.Description)
		if len(info.Settings) > 0 {
			r.Printf("\nSettings: %s\n", strings.Join(info.Settings, ", "))
		}
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(info.Name))
		r.Println("")
		r.Println(info.Description)
		if len(info.Settings) > 0 {
			r.Println("")
			r.Println(styles.Bold.Render("Settings"))
			for _, key := range info.Settings {
				r.Println("  " + key)
			}
		}
		r.Println("")
		return nil
	}
}
