package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/lockup/internal/backtest"
	"github.com/newthinker/lockup/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Log      LogConfig       `mapstructure:"log"`
	Data     DataConfig      `mapstructure:"data"`
	Strategy backtest.Params `mapstructure:"strategy"`
	Lockup   LockupConfig    `mapstructure:"lockup"`
	Export   ExportConfig    `mapstructure:"export"`
	Archive  ArchiveConfig   `mapstructure:"archive"`
	Metrics  MetricsConfig   `mapstructure:"metrics"`
	Notify   NotifyConfig    `mapstructure:"notify"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

type DataConfig struct {
	Source string `mapstructure:"source"` // "csv"
	Path   string `mapstructure:"path"`
	Symbol string `mapstructure:"symbol"`
}

// LockupConfig selects the lockup-window predicate.
type LockupConfig struct {
	Source       string `mapstructure:"source"` // "always" or "calendar"
	CalendarPath string `mapstructure:"calendar_path"`
	MinDays      int    `mapstructure:"min_days"`
	MaxDays      int    `mapstructure:"max_days"`
}

// ExportConfig controls the trade ledger file. An empty path disables export.
type ExportConfig struct {
	Format string `mapstructure:"format"` // "csv", "json" or "parquet"
	Path   string `mapstructure:"path"`
}

type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "none", "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration. An empty textfile disables output.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// NotifyConfig lists run-completion notifiers
type NotifyConfig struct {
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig posts run summaries as JSON. An empty url disables it.
type WebhookConfig struct {
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

// Load reads configuration from file on top of Defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.SetEnvPrefix("LOCKUP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every default so env overrides work without a file entry
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.path", d.Data.Path)
	v.SetDefault("data.symbol", d.Data.Symbol)
	v.SetDefault("strategy.rsi_period", d.Strategy.RSIPeriod)
	v.SetDefault("strategy.volume_window", d.Strategy.VolumeWindow)
	v.SetDefault("strategy.entry_rsi", d.Strategy.EntryRSI)
	v.SetDefault("strategy.exit_rsi", d.Strategy.ExitRSI)
	v.SetDefault("strategy.take_profit", d.Strategy.TakeProfit)
	v.SetDefault("strategy.stop_loss", d.Strategy.StopLoss)
	v.SetDefault("strategy.quantity", d.Strategy.Quantity)
	v.SetDefault("lockup.source", d.Lockup.Source)
	v.SetDefault("lockup.calendar_path", d.Lockup.CalendarPath)
	v.SetDefault("lockup.min_days", d.Lockup.MinDays)
	v.SetDefault("lockup.max_days", d.Lockup.MaxDays)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("export.path", d.Export.Path)
	v.SetDefault("archive.type", d.Archive.Type)
	v.SetDefault("archive.path", d.Archive.Path)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
	v.SetDefault("notify.webhook.url", d.Notify.Webhook.URL)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Data: DataConfig{
			Source: "csv",
			Path:   "data/sample.csv",
			Symbol: "DEMO",
		},
		Strategy: backtest.DefaultParams(),
		Lockup: LockupConfig{
			Source:  "always",
			MinDays: 1,
			MaxDays: 3,
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Archive: ArchiveConfig{
			Type: "none",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("data.path is required"))
	}
	if c.Data.Symbol == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("data.symbol is required"))
	}

	if err := c.Strategy.Validate(); err != nil {
		return core.WrapError(core.ErrConfigInvalid, err)
	}

	switch c.Lockup.Source {
	case "always":
	case "calendar":
		if c.Lockup.CalendarPath == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("lockup.calendar_path required when source is calendar"))
		}
		if c.Lockup.MinDays < 0 || c.Lockup.MaxDays < c.Lockup.MinDays {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("lockup window [%d, %d] is invalid", c.Lockup.MinDays, c.Lockup.MaxDays))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown lockup source %q", c.Lockup.Source))
	}

	if c.Export.Path != "" {
		switch strings.ToLower(c.Export.Format) {
		case "csv", "json", "parquet":
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown export format %q", c.Export.Format))
		}
	}

	switch c.Archive.Type {
	case "", "none":
	case "localfs":
		if c.Archive.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("archive.path required when type is localfs"))
		}
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("archive.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	return nil
}
