package cmd

import (
	"github.com/spf13/cobra"

	"autoskip/internal/engine"
	"autoskip/internal/output"
	"autoskip/internal/platform"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Sample screen brightness at a point",
	Long:  "Runs the idempotence probe at the given screen coordinates and prints the averaged brightness and the already-active verdict. Use it to calibrate the threshold when the target application restyles its toggle.",
	RunE:  runProbe,
}

func init() {
	probeCmd.Flags().Int("x", 0, "Screen X coordinate")
	probeCmd.Flags().Int("y", 0, "Screen Y coordinate")
	probeCmd.MarkFlagRequired("x")
	probeCmd.MarkFlagRequired("y")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")

	probe := engine.NewProbe(provider.PixelSampler)
	// One read: deriving the verdict from a second sampling pass could
	// disagree with the printed brightness if the screen changes between.
	avg, valid := probe.Average(x, y)

	result := struct {
		X          int     `yaml:"x"          json:"x"`
		Y          int     `yaml:"y"          json:"y"`
		Samples    int     `yaml:"samples"    json:"samples"`
		Brightness float64 `yaml:"brightness" json:"brightness"`
		Threshold  float64 `yaml:"threshold"  json:"threshold"`
		Active     bool    `yaml:"active"     json:"active"`
	}{
		X: x, Y: y,
		Samples:    valid,
		Brightness: avg,
		Threshold:  engine.BrightnessThreshold,
		Active:     valid > 0 && avg > engine.BrightnessThreshold,
	}
	return output.Print(result)
}
