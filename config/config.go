// Package config wraps viper with the simulator's defaults and decodes the
// typed blocks (bot params, world settings, personality profiles) the rest
// of the code consumes.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"

	"github.com/tutumagi/racenav/bot"
	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/world"
)

// ErrCodeInvalid is returned for config blocks that fail decoding or validation
const ErrCodeInvalid = "CFG_001"

// Config is a wrapper around a viper config
type Config struct {
	config   *viper.Viper
	validate *validator.Validate
}

// NewConfig creates a new config with a given viper config if given
func NewConfig(cfgs ...*viper.Viper) *Config {
	var cfg *viper.Viper
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	} else {
		cfg = viper.New()
	}

	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	c := &Config{config: cfg, validate: validator.New()}
	c.fillDefaultValues()
	return c
}

func (c *Config) fillDefaultValues() {
	defaultsMap := map[string]interface{}{
		"racenav.sim.bots":         8,
		"racenav.sim.duration":     90 * time.Second,
		"racenav.sim.dt":           0.02,
		"racenav.sim.seed":         0,
		"racenav.sim.track":        "",
		"racenav.sim.report":       10 * time.Second,
		"racenav.sim.spawnSpacing": 1.2,

		"racenav.metrics.constTags":            map[string]string{},
		"racenav.metrics.prometheus.enabled":   false,
		"racenav.metrics.prometheus.port":      9090,
		"racenav.metrics.prometheus.namespace": "racenav",
		"racenav.metrics.statsd.enabled":       false,
		"racenav.metrics.statsd.host":          "localhost:8125",
		"racenav.metrics.statsd.prefix":        "racenav.",
		"racenav.metrics.statsd.rate":          1,

		"logger.level":      "info",
		"logger.stdout":     true,
		"logger.rotation":   false,
		"logger.maxsize":    100,
		"logger.maxage":     7,
		"logger.maxbackups": 3,
	}

	for param := range defaultsMap {
		if c.config.Get(param) == nil {
			c.config.SetDefault(param, defaultsMap[param])
		}
	}
}

// Viper the wrapped config, for packages that take one
func (c *Config) Viper() *viper.Viper {
	return c.config
}

// Get returns an interface from the inner config
func (c *Config) Get(key string) interface{} {
	return c.config.Get(key)
}

// GetBool returns a bool from the inner config
func (c *Config) GetBool(key string) bool {
	return c.config.GetBool(key)
}

// GetDuration returns a duration from the inner config
func (c *Config) GetDuration(key string) time.Duration {
	return c.config.GetDuration(key)
}

// GetFloat64 returns a float64 from the inner config
func (c *Config) GetFloat64(key string) float64 {
	return c.config.GetFloat64(key)
}

// GetInt returns an int from the inner config
func (c *Config) GetInt(key string) int {
	return c.config.GetInt(key)
}

// GetInt64 returns an int64 from the inner config
func (c *Config) GetInt64(key string) int64 {
	return c.config.GetInt64(key)
}

// GetString returns a string from the inner config
func (c *Config) GetString(key string) string {
	return c.config.GetString(key)
}

// GetStringMapString returns a string map string from the inner config
func (c *Config) GetStringMapString(key string) map[string]string {
	return c.config.GetStringMapString(key)
}

// IsSet reports whether key has a value
func (c *Config) IsSet(key string) bool {
	return c.config.IsSet(key)
}

// UnmarshalKey unmarshals key into a struct
func (c *Config) UnmarshalKey(key string, rawVal interface{}) error {
	return c.config.UnmarshalKey(key, rawVal)
}

// BotParams decodes the block under key on top of bot.DefaultParams.
// A missing block yields the defaults.
func (c *Config) BotParams(key string) (*bot.Params, error) {
	return c.botParams(c.config, key, bot.DefaultParams())
}

func (c *Config) botParams(v *viper.Viper, key string, base *bot.Params) (*bot.Params, error) {
	p := base.Clone()
	if v.IsSet(key) {
		if err := v.UnmarshalKey(key, p); err != nil {
			return nil, e.NewError(fmt.Errorf("decode %s: %w", key, err), ErrCodeInvalid)
		}
	}
	if err := c.validate.Struct(p); err != nil {
		return nil, e.NewError(fmt.Errorf("invalid bot params %s: %w", key, err), ErrCodeInvalid, map[string]string{"key": key})
	}
	return p, nil
}

// World settings under racenav.world on top of world.DefaultSettings
func (c *Config) World() (world.Settings, error) {
	s := world.DefaultSettings()
	if c.config.IsSet("racenav.world") {
		if err := c.config.UnmarshalKey("racenav.world", &s); err != nil {
			return s, e.NewError(fmt.Errorf("decode racenav.world: %w", err), ErrCodeInvalid)
		}
	}
	if s.View <= 0 || s.RacerRadius <= 0 || s.MaxSpeed <= 0 {
		return s, e.NewError(fmt.Errorf("world view, racerRadius and maxSpeed must be positive"), ErrCodeInvalid)
	}
	return s, nil
}
