package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tutumagi/racenav/bot"
	"github.com/tutumagi/racenav/engine/algo"
	e "github.com/tutumagi/racenav/errors"
)

// Sim settings of a headless race
type Sim struct {
	Bots         int
	Duration     time.Duration
	Dt           float64
	Seed         int64
	Track        string
	Report       time.Duration
	SpawnSpacing float64
}

// Sim reads racenav.sim.*
func (c *Config) Sim() (Sim, error) {
	s := Sim{
		Bots:         c.GetInt("racenav.sim.bots"),
		Duration:     c.GetDuration("racenav.sim.duration"),
		Dt:           c.GetFloat64("racenav.sim.dt"),
		Seed:         c.GetInt64("racenav.sim.seed"),
		Track:        c.GetString("racenav.sim.track"),
		Report:       c.GetDuration("racenav.sim.report"),
		SpawnSpacing: c.GetFloat64("racenav.sim.spawnSpacing"),
	}
	if s.Bots < 1 || s.Dt <= 0 || s.Duration <= 0 {
		return s, e.NewError(fmt.Errorf("sim needs bots >= 1, dt > 0 and a duration, got %+v", s), ErrCodeInvalid)
	}
	return s, nil
}

// Profile is a weighted bot personality
type Profile struct {
	Name   string
	Params *bot.Params

	weight float64
}

// NewProfile named name drawn with weight
func NewProfile(name string, weight float64, params *bot.Params) *Profile {
	return &Profile{Name: name, Params: params, weight: weight}
}

// Weight implements algo.IWeight
func (p *Profile) Weight() float64 {
	return p.weight
}

// Profiles decodes racenav.profiles, a list of {name, weight, params}. Each
// profile's params overlay racenav.bot. Without profiles a single
// "default" profile is returned.
func (c *Config) Profiles() ([]*Profile, error) {
	base, err := c.BotParams("racenav.bot")
	if err != nil {
		return nil, err
	}

	raw, ok := c.Get("racenav.profiles").([]interface{})
	if !ok || len(raw) == 0 {
		return []*Profile{NewProfile("default", 1, base)}, nil
	}

	profiles := make([]*Profile, 0, len(raw))
	for i, r := range raw {
		def, err := algo.JSONArray(raw).GetMap(i)
		if err != nil {
			return nil, e.NewError(fmt.Errorf("profile %d is %T, not a map", i, r), ErrCodeInvalid)
		}
		name := def.StringOr("name", fmt.Sprintf("profile%d", i))

		v := viper.New()
		if params, err := def.GetMap("params"); err == nil {
			v.Set("params", stringKeys(params))
		}
		p, err := c.botParams(v, "params", base)
		if err != nil {
			return nil, e.NewError(err, ErrCodeInvalid, map[string]string{"profile": name})
		}

		profiles = append(profiles, NewProfile(name, def.Float64Or("weight", 1), p))
	}
	return profiles, nil
}

// stringKeys converts yaml's interface keyed maps all the way down
func stringKeys(v interface{}) interface{} {
	switch m := v.(type) {
	case algo.JSONMap:
		return stringKeys(map[string]interface{}(m))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[k] = stringKeys(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	}
	return v
}
