package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine tuning file. Zero-valued fields fall back to the
// defaults, so a config file only needs the knobs it changes.
type Config struct {
	// Gravity is the downward acceleration in tile units per second
	// squared.
	Gravity float64 `yaml:"gravity"`
	// FixedStep is the simulation step in seconds; Run always advances
	// the world in whole steps of this size.
	FixedStep float64 `yaml:"fixed_step"`
	// TickMillis is how often the host loop wakes to drain accumulated
	// time.
	TickMillis float64 `yaml:"tick_millis"`
	// ProjectileLifetime is how long spawned projectiles live, in
	// seconds.
	ProjectileLifetime float64 `yaml:"projectile_lifetime"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:            20,
		FixedStep:          1.0 / 60.0,
		TickMillis:         16,
		ProjectileLifetime: 3,
	}
}

// LoadConfig reads a YAML config, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("engine: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: unmarshal config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FixedStep <= 0 {
		c.FixedStep = def.FixedStep
	}
	if c.TickMillis <= 0 {
		c.TickMillis = def.TickMillis
	}
	if c.ProjectileLifetime <= 0 {
		c.ProjectileLifetime = def.ProjectileLifetime
	}
	return c
}
