package cmd

import (
	"testing"
	"time"

	"autoskip/internal/config"
	"autoskip/internal/model"
)

func TestParseBBox(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Bounds
		wantErr bool
	}{
		{name: "valid", input: "10,20,300,400", want: model.Bounds{X: 10, Y: 20, Width: 300, Height: 400}},
		{name: "spaces", input: " 1, 2, 3, 4 ", want: model.Bounds{X: 1, Y: 2, Width: 3, Height: 4}},
		{name: "negative origin", input: "-5,-5,100,100", want: model.Bounds{X: -5, Y: -5, Width: 100, Height: 100}},
		{name: "too few parts", input: "1,2,3", wantErr: true},
		{name: "not a number", input: "1,2,3,x", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBBox(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseBBox(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBBox(%q): %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("parseBBox(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestEngineOptionsDefaults(t *testing.T) {
	cfg := config.Default()

	opts := engineOptions(cfg, 0, 0)
	if opts.Interval != 10*time.Second {
		t.Errorf("Interval = %s, want 10s", opts.Interval)
	}
	if opts.MaxRows != 25 {
		t.Errorf("MaxRows = %d, want 25", opts.MaxRows)
	}
	if opts.RowPrefix != "ListViewItem-" {
		t.Errorf("RowPrefix = %q", opts.RowPrefix)
	}
	if opts.HeaderPrefix != "HeaderItem-" {
		t.Errorf("HeaderPrefix = %q", opts.HeaderPrefix)
	}
	if opts.ButtonPrefix != "ButtonField-" {
		t.Errorf("ButtonPrefix = %q", opts.ButtonPrefix)
	}
}

func TestEngineOptionsOverrides(t *testing.T) {
	cfg := config.Default()

	opts := engineOptions(cfg, 3, 5)
	if opts.Interval != 3*time.Second {
		t.Errorf("Interval = %s, want 3s", opts.Interval)
	}
	if opts.MaxRows != 5 {
		t.Errorf("MaxRows = %d, want 5", opts.MaxRows)
	}
}

func TestEngineOptionsCopiesRules(t *testing.T) {
	cfg := config.Default()
	opts := engineOptions(cfg, 0, 0)
	if len(opts.Rules) != len(cfg.Rules) {
		t.Fatalf("rules length = %d, want %d", len(opts.Rules), len(cfg.Rules))
	}
	if len(opts.Rules) == 0 {
		t.Fatal("default config has no rules")
	}
	opts.Rules[0].Name = "mutated"
	if cfg.Rules[0].Name == "mutated" {
		t.Error("mutating options rules changed the config slice")
	}
}
