package cmd

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"autoskip/internal/model"
	"autoskip/internal/output"
	"autoskip/internal/platform"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen to a PNG file",
	Long:  "Captures the full screen, or a region given as --bbox x,y,w,h, and writes it as PNG. Handy for documenting what the poller saw when a rule misfires.",
	RunE:  runScreenshot,
}

func init() {
	screenshotCmd.Flags().String("out", "screenshot.png", "Output file path")
	screenshotCmd.Flags().Float64("scale", 1.0, "Scale factor applied to the captured image")
	screenshotCmd.Flags().String("bbox", "", "Capture region as x,y,w,h (default: full screen)")
	rootCmd.AddCommand(screenshotCmd)
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	var bounds *model.Bounds
	if bbox, _ := cmd.Flags().GetString("bbox"); bbox != "" {
		bounds, err = parseBBox(bbox)
		if err != nil {
			return err
		}
	}

	img, err := provider.Screenshotter.CaptureScreen(bounds)
	if err != nil {
		return err
	}

	scale, _ := cmd.Flags().GetFloat64("scale")
	if scale <= 0 {
		return fmt.Errorf("invalid scale %v: must be positive", scale)
	}
	if scale != 1.0 {
		img = scaleImage(img, scale)
	}

	out, _ := cmd.Flags().GetString("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	b := img.Bounds()
	result := struct {
		Path   string `yaml:"path"   json:"path"`
		Width  int    `yaml:"width"  json:"width"`
		Height int    `yaml:"height" json:"height"`
	}{Path: out, Width: b.Dx(), Height: b.Dy()}
	return output.Print(result)
}

func scaleImage(src image.Image, scale float64) image.Image {
	b := src.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
