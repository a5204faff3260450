package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"autoskip/internal/config"
	"autoskip/internal/engine"
	"autoskip/internal/model"
	"autoskip/internal/rules"
)

// RowInfo is the printable form of one extracted worklist row.
type RowInfo struct {
	Priority  string       `yaml:"priority,omitempty"  json:"priority,omitempty"`
	Accession string       `yaml:"accession,omitempty" json:"accession,omitempty"`
	Procedure string       `yaml:"procedure"           json:"procedure"`
	Hospital  string       `yaml:"hospital,omitempty"  json:"hospital,omitempty"`
	Bounds    model.Bounds `yaml:"bounds"              json:"bounds"`
	Rule      string       `yaml:"rule,omitempty"      json:"rule,omitempty"`
}

func rowInfo(r *engine.WorklistRow) RowInfo {
	return RowInfo{
		Priority:  r.Priority(),
		Accession: r.Accession(),
		Procedure: r.Procedure(),
		Hospital:  r.Hospital(),
		Bounds:    r.Bounds,
	}
}

// engineOptions maps loaded settings to poller options, with optional flag
// overrides (zero values keep the configured value).
func engineOptions(cfg config.Config, intervalOverride, maxRowsOverride int) engine.Options {
	interval := cfg.Settings.PollIntervalSeconds
	if intervalOverride > 0 {
		interval = intervalOverride
	}
	maxRows := cfg.Settings.MaxRows
	if maxRowsOverride > 0 {
		maxRows = maxRowsOverride
	}
	return engine.Options{
		Interval:     time.Duration(interval) * time.Second,
		MaxRows:      maxRows,
		TitleTerms:   cfg.Settings.WindowTitleTerms,
		RowPrefix:    cfg.Settings.RowIDPrefix,
		HeaderPrefix: cfg.Settings.HeaderIDPrefix,
		ButtonPrefix: cfg.Settings.ButtonIDPrefix,
		Notify:       cfg.Settings.Notifications,
		Rules:        copyRules(cfg.Rules),
	}
}

// copyRules copies the rule list as configured. Order is significant (first
// match wins), so no reordering happens; the copy keeps the config slice
// immutable from the poller's point of view.
func copyRules(list []rules.SkipRule) []rules.SkipRule {
	out := make([]rules.SkipRule, len(list))
	copy(out, list)
	return out
}

// parseBBox parses an "x,y,w,h" string into a Bounds.
func parseBBox(s string) (*model.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	return &model.Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// loadConfigFlag loads the config from --config when set, or the default
// location otherwise.
func loadConfigFlag(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
