// Package config loads connection settings for the demo client: the
// server address to dial, the protocol version to advertise in the
// handshake, and the username to log in with. Grounded on
// firestige-Otus's viper+yaml configuration loading, the one piece of the
// ambient stack BX-D-mini-RPC itself never needed (it takes constructor
// args instead) but that a runnable client binary does.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds everything cmd/mcclient needs to open and carry a
// connection through HANDSHAKE/LOGIN/CONFIGURATION.
type Config struct {
	ServerAddress   string `mapstructure:"server_address" yaml:"server_address"`
	ProtocolVersion int32  `mapstructure:"protocol_version" yaml:"protocol_version"`
	Username        string `mapstructure:"username" yaml:"username"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
}

// defaults mirrors the values a fresh vanilla 1.20.4 client would use
// absent any configuration file.
func defaults() Config {
	return Config{
		ServerAddress:   "localhost:25565",
		ProtocolVersion: 765,
		Username:        "Player",
		LogLevel:        "info",
	}
}

// Load reads YAML configuration from path, falling back to built-in
// defaults for any key the file doesn't set. An empty path loads defaults
// only — useful for tests and for a zero-config quick start.
func Load(path string) (Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("server_address", cfg.ServerAddress)
	v.SetDefault("protocol_version", cfg.ProtocolVersion)
	v.SetDefault("username", cfg.Username)
	v.SetDefault("log_level", cfg.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes a commented-out-free YAML skeleton of the default
// configuration to path, for `mcclient config-init`. It marshals with
// yaml.v3 directly rather than through viper, which has no "write what I
// just read" counterpart to ReadInConfig.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(defaults())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
