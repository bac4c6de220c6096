package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dgnsrekt/wheelscan/internal/notify"
	"github.com/dgnsrekt/wheelscan/internal/report"
)

type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

type SourceConfig struct {
	BaseURL       string  `mapstructure:"base_url"`
	UserAgent     string  `mapstructure:"user_agent"`
	TimeoutSec    int     `mapstructure:"timeout_sec"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
}

type ScanConfig struct {
	Symbols     []string `mapstructure:"symbols"`
	Side        string   `mapstructure:"side"`
	Delta       float64  `mapstructure:"delta"`
	DeltaRange  float64  `mapstructure:"delta_range"`
	StrikeWidth int      `mapstructure:"strike_width"`
	MaxDTE      int      `mapstructure:"max_dte"`
	Timezone    string   `mapstructure:"timezone"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

type NotifyConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Server   string `mapstructure:"server"`
	Topic    string `mapstructure:"topic"`
	Priority string `mapstructure:"priority"`
	Tags     string `mapstructure:"tags"`
	Token    string `mapstructure:"token"`
}

// NotifierConfig converts to the notify package's config.
func (n NotifyConfig) NotifierConfig() *notify.Config {
	return &notify.Config{
		Enabled:  n.Enabled,
		Server:   n.Server,
		Topic:    n.Topic,
		Priority: n.Priority,
		Tags:     n.Tags,
		Token:    n.Token,
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("source.base_url", DefaultBaseURL)
	v.SetDefault("source.user_agent", "Mozilla/5.0")
	v.SetDefault("source.timeout_sec", 30)
	v.SetDefault("source.rate_per_second", 1.0)
	v.SetDefault("scan.symbols", []string{})
	v.SetDefault("scan.side", "put")
	v.SetDefault("scan.delta", DefaultDelta)
	v.SetDefault("scan.delta_range", DefaultDeltaRange)
	v.SetDefault("scan.strike_width", DefaultStrikeWidth)
	v.SetDefault("scan.max_dte", 0)
	v.SetDefault("scan.timezone", "America/New_York")
	v.SetDefault("output.format", "text")
	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.server", "https://ntfy.sh")
	v.SetDefault("notify.topic", "")
	v.SetDefault("notify.priority", "default")
	v.SetDefault("notify.tags", "chart_with_upwards_trend")
	v.SetDefault("notify.token", "")

	// Environment variable support
	v.SetEnvPrefix("WHEELSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	validateScan(errs, c.Scan)

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		errs.Problems = append(errs.Problems, "output.format: "+err.Error())
	}
	if c.Source.RatePerSecond <= 0 {
		errs.Problems = append(errs.Problems, "source.rate_per_second must be > 0")
	}
	if c.Source.TimeoutSec < 1 {
		errs.Problems = append(errs.Problems, "source.timeout_sec must be >= 1")
	}
	if err := c.Notify.NotifierConfig().Validate(); err != nil {
		errs.Problems = append(errs.Problems, err.Error())
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
