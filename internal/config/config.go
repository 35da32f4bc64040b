package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/banktrace/banktrace/internal/logger"
)

type Config struct {
	// DataDir holds transactions.json and custom_category_rules.json.
	DataDir string `toml:"data_dir"`
	// DateLayout is the Go layout used to parse dates in imported CSV files.
	DateLayout string `toml:"date_layout"`
	Logger     logger.Config `toml:"logger"`
}

const (
	defaultDateLayout = "2006-01-02"
	defaultLogLevel   = logger.LevelInfo
	defaultLogFormat  = logger.FormatText
	defaultLogOutput  = "stdout"
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".banktrace"
	}
	return filepath.Join(home, ".banktrace")
}

// Parse reads the TOML configuration file and applies environment overrides.
// A missing file is not an error; defaults apply.
func Parse(file string) (*Config, error) {
	conf := &Config{}

	bytes, err := os.ReadFile(file)
	if err == nil {
		if err = toml.Unmarshal(bytes, conf); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	conf.parseEnv()
	conf.applyDefaults()

	return conf, nil
}

func (c *Config) parseEnv() {
	if dir := os.Getenv("BANKTRACE_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}

	if layout := os.Getenv("BANKTRACE_DATE_LAYOUT"); layout != "" {
		c.DateLayout = layout
	}

	if level := os.Getenv("BANKTRACE_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("BANKTRACE_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("BANKTRACE_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.DateLayout == "" {
		c.DateLayout = defaultDateLayout
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}
	if c.Logger.Format == "" {
		c.Logger.Format = defaultLogFormat
	}
	if c.Logger.Output == "" {
		c.Logger.Output = defaultLogOutput
	}
}
