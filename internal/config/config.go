package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full bot configuration.
type Config struct {
	// Picks and Bans are champion names in preference order. The first entry
	// is tried first; later entries are fallbacks.
	Picks []string `yaml:"picks"`
	Bans  []string `yaml:"bans"`

	Client   ClientConfig   `yaml:"client"`
	LiveGame LiveGameConfig `yaml:"live_game"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// ClientConfig controls how the League client is located. When Port and
// Token are both set, discovery is skipped entirely. Lockfile points at the
// client's install-dir lockfile and is used before process scanning.
type ClientConfig struct {
	Port     int    `yaml:"port"`
	Token    string `yaml:"token"`
	Lockfile string `yaml:"lockfile"`
}

// LiveGameConfig controls game-start detection against the Live Client Data
// endpoint.
type LiveGameConfig struct {
	Addr            string `yaml:"addr"`
	PollIntervalSec int    `yaml:"poll_interval_sec"`
}

// PollInterval returns the minimum delay between game-start polls.
func (c *LiveGameConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// CacheConfig configures the optional Redis champion-table cache. When
// Enabled is false the table is fetched from Data Dragon on every start.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the parts of the configuration the bot cannot run without.
func (c *Config) Validate() error {
	if len(c.Picks) == 0 {
		return errors.New("config: picks list is empty")
	}
	if len(c.Bans) == 0 {
		return errors.New("config: bans list is empty")
	}
	// Port and token are only usable as a pair.
	if (c.Client.Port == 0) != (c.Client.Token == "") {
		return errors.New("config: client port and token must be set together")
	}
	if c.Client.Port < 0 || c.Client.Port > 65535 {
		return fmt.Errorf("config: invalid client port %d", c.Client.Port)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LiveGame.Addr == "" {
		c.LiveGame.Addr = "127.0.0.1:2999"
	}
	if c.LiveGame.PollIntervalSec == 0 {
		c.LiveGame.PollIntervalSec = 2
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Default returns the built-in defaults. Picks and Bans are intentionally
// empty; they have no sensible default and Validate rejects them.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
