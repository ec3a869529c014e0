package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

//go:embed default_config.toml
var defaultConfig string

var Current = &Config{}

func init() {
	if _, err := toml.Decode(defaultConfig, Current); err != nil {
		panic(err)
	}
}

type Config struct {
	UI   UIConfig          `toml:"ui"`
	Keys KeyMappings[keys] `toml:"keys"`
	AI   AIConfig          `toml:"ai"`
	Git  GitConfig         `toml:"git"`
}

type UIConfig struct {
	TickIntervalMs       int    `toml:"tick_interval_ms"`
	DiffHighlight        bool   `toml:"diff_highlight"`
	DiffStyle            string `toml:"diff_style"`
	PopupWidthPercentage int    `toml:"popup_width_percentage"`
	PopupHeight          int    `toml:"popup_height"`
}

func (c UIConfig) TickInterval() time.Duration {
	if c.TickIntervalMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

type AIConfig struct {
	Provider       string  `toml:"provider"`
	GitHubURL      string  `toml:"github_url"`
	GitHubModel    string  `toml:"github_model"`
	OpenAIURL      string  `toml:"openai_url"`
	OpenAIModel    string  `toml:"openai_model"`
	CopilotCommand string  `toml:"copilot_command"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxDiffChars   int     `toml:"max_diff_chars"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	LoadDotenv     bool    `toml:"load_dotenv"`
}

func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type GitConfig struct {
	StageTimeoutSeconds  int `toml:"stage_timeout_seconds"`
	CommitTimeoutSeconds int `toml:"commit_timeout_seconds"`
}

func (c GitConfig) StageTimeout() time.Duration {
	return time.Duration(c.StageTimeoutSeconds) * time.Second
}

func (c GitConfig) CommitTimeout() time.Duration {
	return time.Duration(c.CommitTimeoutSeconds) * time.Second
}

// Path returns the user configuration file location. COMMIT_WIZARD_CONFIG
// takes precedence over the platform config directory.
func Path() (string, error) {
	if p := os.Getenv("COMMIT_WIZARD_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating config directory")
	}
	return filepath.Join(dir, "commit-wizard", "config.toml"), nil
}

// Load overlays the user configuration file, if there is one, on top of the
// defaults in Current.
func Load() error {
	p, err := Path()
	if err != nil {
		return err
	}
	return LoadFile(p)
}

func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return Merge(string(data))
}

// Merge decodes content over Current. Keys missing from content keep their
// current values.
func Merge(content string) error {
	if _, err := toml.Decode(content, Current); err != nil {
		return errors.WithHint(errors.Wrap(err, "parsing configuration"), "check the TOML syntax of your config.toml")
	}
	return nil
}
