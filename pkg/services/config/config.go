package config

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "RISKFLAGS"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Upload UploadConfig `mapstructure:"upload"`
	Rules  RulesConfig  `mapstructure:"rules"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type UploadConfig struct {
	MaxBytes      int64   `mapstructure:"max_bytes"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

type RulesConfig struct {
	ISCRMin           float64 `mapstructure:"iscr_min"`
	RevenueMin        float64 `mapstructure:"revenue_min"`
	BorrowingRatioMax float64 `mapstructure:"borrowing_ratio_max"`
}

func (c RulesConfig) Settings() rules.Settings {
	return rules.Settings{
		ISCRMin:           c.ISCRMin,
		RevenueMin:        c.RevenueMin,
		BorrowingRatioMax: c.BorrowingRatioMax,
	}
}

func setDefaults(v *viper.Viper) {
	defaults := rules.DefaultSettings()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("upload.max_bytes", 5<<20)
	v.SetDefault("upload.rate_per_second", 10.0)
	v.SetDefault("upload.burst", 30)
	v.SetDefault("rules.iscr_min", defaults.ISCRMin)
	v.SetDefault("rules.revenue_min", defaults.RevenueMin)
	v.SetDefault("rules.borrowing_ratio_max", defaults.BorrowingRatioMax)
}

// LoadConfig reads the optional config file at path and applies RISKFLAGS_*
// environment overrides. SERVER_HOST and SERVER_PORT are honoured as well.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "SERVER_HOST")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "SERVER_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must be set")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Upload.RatePerSecond > 0 && c.Upload.Burst <= 0 {
		return fmt.Errorf("upload burst must be positive when a rate is set, got %d", c.Upload.Burst)
	}
	if c.Rules.BorrowingRatioMax <= 0 {
		return fmt.Errorf("rules borrowing_ratio_max must be positive, got %g", c.Rules.BorrowingRatioMax)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// NewLogger builds the root logger at the configured level.
func NewLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
