package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"autoskip/internal/model"
	"autoskip/internal/output"
	"autoskip/internal/platform"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible top-level windows",
	RunE:  runWindows,
}

func init() {
	windowsCmd.Flags().String("title", "", "Only show windows whose title contains this text")
	rootCmd.AddCommand(windowsCmd)
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	wins, err := provider.WindowFinder.ListWindows()
	if err != nil {
		return err
	}

	filter, _ := cmd.Flags().GetString("title")
	if filter != "" {
		needle := strings.ToLower(filter)
		filtered := wins[:0]
		for _, w := range wins {
			if strings.Contains(strings.ToLower(w.Title), needle) {
				filtered = append(filtered, w)
			}
		}
		wins = filtered
	}

	result := struct {
		Count   int            `yaml:"count"   json:"count"`
		Windows []model.Window `yaml:"windows" json:"windows"`
	}{Count: len(wins), Windows: wins}
	return output.Print(result)
}
