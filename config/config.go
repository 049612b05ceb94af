// Package config holds the JSON configuration of the decode and memory core.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32core/emu"
	"github.com/sarchlab/rv32core/timing/cache"
)

// Config holds the tunable parameters of one emulator instance.
type Config struct {
	// BankSize is the memory bank size in bytes. Default: 51200.
	BankSize int `json:"bank_size"`

	// LogLevel is a logrus level name ("info", "debug", "trace", ...).
	// Default: "info".
	LogLevel string `json:"log_level"`

	// Cache configures the optional data cache model.
	Cache cache.Config `json:"cache"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BankSize: emu.DefaultBankSize,
		LogLevel: logrus.InfoLevel.String(),
		Cache:    cache.DefaultConfig(),
	}
}

// Load reads a Config from a JSON file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Save writes the Config to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable core.
func (c *Config) Validate() error {
	if c.BankSize <= 0 {
		return fmt.Errorf("bank_size must be > 0")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	cc := c.Cache
	if cc.BlockSize < 4 || cc.BlockSize&(cc.BlockSize-1) != 0 {
		return fmt.Errorf("cache.block_size must be a power of two >= 4")
	}
	if cc.Associativity <= 0 {
		return fmt.Errorf("cache.associativity must be > 0")
	}
	if cc.Size <= 0 || cc.Size%(cc.Associativity*cc.BlockSize) != 0 {
		return fmt.Errorf("cache.size must be a positive multiple of associativity * block_size")
	}
	if c.BankSize%cc.BlockSize != 0 {
		return fmt.Errorf("bank_size must be a multiple of cache.block_size")
	}
	if cc.HitLatency == 0 {
		return fmt.Errorf("cache.hit_latency must be > 0")
	}
	if cc.MissLatency < cc.HitLatency {
		return fmt.Errorf("cache.miss_latency must be >= cache.hit_latency")
	}

	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewMemory builds a memory bank sized by the configuration.
func (c *Config) NewMemory(log logrus.FieldLogger) *emu.Memory {
	opts := []emu.MemoryOption{emu.WithBankSize(c.BankSize)}
	if log != nil {
		opts = append(opts, emu.WithMemoryLogger(log))
	}
	return emu.NewMemory(opts...)
}
