package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig is the WebSocket listener configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig points at the stats store. Leaving Addr empty disables stats.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the game-session knobs.
type GameConfig struct {
	WinThreshold   int `yaml:"win_threshold"`   // cumulative points ending the game
	TrickDelayMs   int `yaml:"trick_delay_ms"`  // pause before prompting the next lead
	TurnTimeout    int `yaml:"turn_timeout"`    // seconds until a card is auto-played, 0 disables
	DeclareTimeout int `yaml:"declare_timeout"` // seconds until a declaration auto-passes, 0 disables
	RoomTimeout    int `yaml:"room_timeout"`    // minutes a waiting room may sit idle
}

// TrickDelayDuration returns the pacing pause before the next turn prompt.
func (c *GameConfig) TrickDelayDuration() time.Duration {
	return time.Duration(c.TrickDelayMs) * time.Millisecond
}

// TurnTimeoutDuration returns the play timeout.
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// DeclareTimeoutDuration returns the declaration timeout.
func (c *GameConfig) DeclareTimeoutDuration() time.Duration {
	return time.Duration(c.DeclareTimeout) * time.Second
}

// RoomTimeoutDuration returns the idle-room lifetime.
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// Load reads a YAML config file and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 10000
	}
	if cfg.Game.WinThreshold == 0 {
		cfg.Game.WinThreshold = 151
	}
	if cfg.Game.TrickDelayMs == 0 {
		cfg.Game.TrickDelayMs = 1000
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.DeclareTimeout == 0 {
		cfg.Game.DeclareTimeout = 15
	}
	if cfg.Game.RoomTimeout == 0 {
		cfg.Game.RoomTimeout = 10
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
