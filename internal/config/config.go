// Package config handles the autoskip settings directory. Settings and the
// skip-rule list live in a single config.yaml; a commented default is written
// on first run so users can edit it in place.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"autoskip/internal/rules"
)

const (
	// appDirName is the folder created under the user config directory.
	appDirName = "autoskip"

	configFileName = "config.yaml"

	// LogFileName is the diagnostic log written next to config.yaml.
	LogFileName = "autoskip.log"
)

const defaultConfigYAML = `# autoskip configuration
version: 1

settings:
  # Seconds between worklist polls.
  poll_interval_seconds: 10
  # Only the first max_rows rows (in on-screen order) are considered per poll.
  max_rows: 25
  # A window is the worklist only if its title contains ALL of these,
  # case-insensitively.
  window_title_terms:
    - Worklist
  # Structural identifier prefixes in the target application's accessibility
  # tree. Data rows carry the row prefix; header rows carry the header prefix
  # and are never acted on.
  row_id_prefix: "ListViewItem-"
  header_id_prefix: "HeaderItem-"
  # Automation-ID prefix of the per-row action buttons. The skip toggle is
  # the SECOND such button in each row.
  button_id_prefix: "ButtonField-"
  notifications: true

# Skip rules, evaluated top to bottom; the first match wins.
# Each term set is a comma-separated list of case-insensitive substrings.
# required: ALL terms must appear. any_of: at least one must appear (when
# non-empty). exclude: none may appear. A rule with all three empty never
# matches anything.
rules:
  - enabled: false
    name: example-venous-doppler
    required: ""
    any_of: "VENOUS, DOPPLER"
    exclude: "ARTERIAL"
    include_priority: false
`

// Settings are the scalar knobs read by the poller.
type Settings struct {
	PollIntervalSeconds int      `yaml:"poll_interval_seconds"`
	MaxRows             int      `yaml:"max_rows"`
	WindowTitleTerms    []string `yaml:"window_title_terms"`
	RowIDPrefix         string   `yaml:"row_id_prefix"`
	HeaderIDPrefix      string   `yaml:"header_id_prefix"`
	ButtonIDPrefix      string   `yaml:"button_id_prefix"`
	Notifications       bool     `yaml:"notifications"`
}

// Config models config.yaml.
type Config struct {
	Version  int              `yaml:"version"`
	Settings Settings         `yaml:"settings"`
	Rules    []rules.SkipRule `yaml:"rules"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	// The default YAML is the source of truth so the file written on first
	// run and the in-memory defaults can never drift apart.
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: default yaml invalid: %v", err))
	}
	return cfg
}

// Dir returns the autoskip settings directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: ensure config dir: %w", err)
	}
	return dir, nil
}

// LogPath returns the diagnostic log path inside the settings directory.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// Load reads config.yaml from the settings directory, writing the commented
// default first when no file exists yet.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(filepath.Join(dir, configFileName))
}

// LoadFile reads a config file from an explicit path. A missing file is
// created from the default template.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); werr != nil {
			return Config{}, fmt.Errorf("config: write default config: %w", werr)
		}
		data = []byte(defaultConfigYAML)
	} else if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	// Decode over the defaults so keys a hand-edited file dropped keep
	// their default value. This matters for notifications, whose default
	// is true and whose zero value is not.
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyFallbacks(&cfg)
	return cfg, nil
}

// applyFallbacks refills settings an edited file set to explicit zero or
// empty values.
func applyFallbacks(cfg *Config) {
	def := Default()
	if cfg.Settings.PollIntervalSeconds <= 0 {
		cfg.Settings.PollIntervalSeconds = def.Settings.PollIntervalSeconds
	}
	if cfg.Settings.MaxRows <= 0 {
		cfg.Settings.MaxRows = def.Settings.MaxRows
	}
	if len(cfg.Settings.WindowTitleTerms) == 0 {
		cfg.Settings.WindowTitleTerms = def.Settings.WindowTitleTerms
	}
	if cfg.Settings.RowIDPrefix == "" {
		cfg.Settings.RowIDPrefix = def.Settings.RowIDPrefix
	}
	if cfg.Settings.HeaderIDPrefix == "" {
		cfg.Settings.HeaderIDPrefix = def.Settings.HeaderIDPrefix
	}
	if cfg.Settings.ButtonIDPrefix == "" {
		cfg.Settings.ButtonIDPrefix = def.Settings.ButtonIDPrefix
	}
}
