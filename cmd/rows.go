package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoskip/internal/engine"
	"autoskip/internal/logging"
	"autoskip/internal/output"
	"autoskip/internal/platform"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Extract and print the current worklist rows",
	Long:  "Locates the worklist window, walks its accessibility tree once, and prints the rows the poller would see. Useful for verifying the column mapping against the live application.",
	RunE:  runRows,
}

func init() {
	rowsCmd.Flags().Int("max", 0, "Override the per-poll row limit")
	rowsCmd.Flags().String("config", "", "Config file path (default: the user config dir)")
	rootCmd.AddCommand(rowsCmd)
}

func runRows(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfigFlag(cfgPath)
	if err != nil {
		return err
	}
	maxRows, _ := cmd.Flags().GetInt("max")
	if maxRows <= 0 {
		maxRows = cfg.Settings.MaxRows
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	win, ok := engine.Locate(provider.WindowFinder, cfg.Settings.WindowTitleTerms)
	if !ok {
		return fmt.Errorf("no window matching title terms %v", cfg.Settings.WindowTitleTerms)
	}

	extractor := engine.NewExtractor(provider.TreeReader, cfg.Settings.RowIDPrefix, cfg.Settings.HeaderIDPrefix, logging.Discard())
	rows := extractor.Extract(win, maxRows)
	defer func() {
		for i := range rows {
			rows[i].Release()
		}
	}()

	infos := make([]RowInfo, 0, len(rows))
	for i := range rows {
		infos = append(infos, rowInfo(&rows[i]))
	}

	result := struct {
		Window string    `yaml:"window" json:"window"`
		Count  int       `yaml:"count"  json:"count"`
		Rows   []RowInfo `yaml:"rows"   json:"rows"`
	}{Window: win.Title, Count: len(infos), Rows: infos}
	return output.Print(result)
}
