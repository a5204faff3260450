package cmd

import (
	"github.com/spf13/cobra"

	"autoskip/internal/engine"
	"autoskip/internal/logging"
	"autoskip/internal/output"
	"autoskip/internal/platform"
	"autoskip/internal/rules"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Evaluate the skip rules without clicking anything",
	Long:  "With --procedure, evaluates the configured rules against the given text and exits. Without it, extracts the live worklist and reports which rows would be skipped. Never clicks.",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().String("procedure", "", "Procedure text to test against the rules")
	matchCmd.Flags().String("priority", "", "Priority text, used by rules with include_priority")
	matchCmd.Flags().String("config", "", "Config file path (default: the user config dir)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFlag(cfgPath)
	if err != nil {
		return err
	}

	procedure, _ := cmd.Flags().GetString("procedure")
	priority, _ := cmd.Flags().GetString("priority")
	if procedure != "" {
		rule, matched := rules.FindFirst(cfg.Rules, procedure, priority)
		result := struct {
			Matched bool   `yaml:"matched" json:"matched"`
			Rule    string `yaml:"rule,omitempty" json:"rule,omitempty"`
		}{Matched: matched, Rule: rule.Name}
		return output.Print(result)
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	win, ok := engine.Locate(provider.WindowFinder, cfg.Settings.WindowTitleTerms)
	if !ok {
		result := struct {
			Window string `yaml:"window" json:"window"`
		}{Window: "not found"}
		return output.Print(result)
	}

	extractor := engine.NewExtractor(provider.TreeReader, cfg.Settings.RowIDPrefix, cfg.Settings.HeaderIDPrefix, logging.Discard())
	rows := extractor.Extract(win, cfg.Settings.MaxRows)
	defer func() {
		for i := range rows {
			rows[i].Release()
		}
	}()

	matches := engine.Match(rows, cfg.Rules)
	infos := make([]RowInfo, 0, len(matches))
	for _, m := range matches {
		info := rowInfo(m.Row)
		info.Rule = m.Rule.Name
		infos = append(infos, info)
	}

	result := struct {
		Window  string    `yaml:"window"  json:"window"`
		Rows    int       `yaml:"rows"    json:"rows"`
		Matches []RowInfo `yaml:"matches" json:"matches"`
	}{Window: win.Title, Rows: len(rows), Matches: infos}
	return output.Print(result)
}
