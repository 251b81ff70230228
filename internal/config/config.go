// Package config defines the engine's runtime tunables. Config is loaded
// from a YAML file with overrides from ORDERBOOK_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level configuration. Maps directly to the YAML file
// structure.
type Config struct {
	Channel ChannelConfig `mapstructure:"channel"`
	Logging LoggingConfig `mapstructure:"logging"`
	Strict  bool          `mapstructure:"strict_validation"`
}

// ChannelConfig sizes the manager's shared update channel and each
// subscription stream's internal buffering.
//
//   - UpdateBufferSize: capacity of OrderBookManager's shared outbound
//     channel. Zero means unbuffered, so every emit blocks on a live reader.
//   - SubscriptionBufferSize: capacity passed as stream.WithBufferSize to a
//     listen_* subscription's Out channel. Zero means unbuffered.
type ChannelConfig struct {
	UpdateBufferSize       int `mapstructure:"update_buffer_size"`
	SubscriptionBufferSize int `mapstructure:"subscription_buffer_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file is present: a modest
// update buffer, info logging, console format, and strict validation on.
func Default() Config {
	return Config{
		Channel: ChannelConfig{
			UpdateBufferSize:       256,
			SubscriptionBufferSize: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Strict: true,
	}
}

// Load reads config from a YAML file at path, falling back to Default for
// any field the file does not set, with ORDERBOOK_* environment variables
// taking precedence over both.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults := Default()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ORDERBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("channel.update_buffer_size", defaults.Channel.UpdateBufferSize)
	v.SetDefault("channel.subscription_buffer_size", defaults.Channel.SubscriptionBufferSize)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("strict_validation", defaults.Strict)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges that would otherwise surface as confusing
// runtime behavior (a negative buffer size, for instance, is silently
// treated as zero, i.e. unbuffered, by manager.New and stream.WithBufferSize).
func (c *Config) Validate() error {
	if c.Channel.UpdateBufferSize < 0 {
		return fmt.Errorf("channel.update_buffer_size must be >= 0")
	}
	if c.Channel.SubscriptionBufferSize < 0 {
		return fmt.Errorf("channel.subscription_buffer_size must be >= 0")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of: console, json")
	}
	return nil
}
