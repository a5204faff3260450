package cmd

import (
	"github.com/spf13/cobra"

	"autoskip/internal/output"
	"autoskip/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the configured skip rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().Bool("enabled", false, "Only show enabled rules")
	rulesCmd.Flags().String("config", "", "Config file path (default: the user config dir)")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFlag(cfgPath)
	if err != nil {
		return err
	}

	list := cfg.Rules
	if only, _ := cmd.Flags().GetBool("enabled"); only {
		var enabled []rules.SkipRule
		for _, r := range list {
			if r.Enabled {
				enabled = append(enabled, r)
			}
		}
		list = enabled
	}

	result := struct {
		Count int              `yaml:"count" json:"count"`
		Rules []rules.SkipRule `yaml:"rules" json:"rules"`
	}{Count: len(list), Rules: list}
	return output.Print(result)
}
