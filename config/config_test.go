package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutumagi/racenav/bot"
	e "github.com/tutumagi/racenav/errors"
)

func fromYAML(t *testing.T, doc string) *Config {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(doc)))
	return NewConfig(v)
}

func TestDefaults(t *testing.T) {
	c := NewConfig()
	sim, err := c.Sim()
	require.NoError(t, err)
	assert.Equal(t, 8, sim.Bots)
	assert.Equal(t, 90*time.Second, sim.Duration)
	assert.Equal(t, 0.02, sim.Dt)
	assert.Equal(t, "info", c.GetString("logger.level"))
	assert.False(t, c.GetBool("racenav.metrics.prometheus.enabled"))

	p, err := c.BotParams("racenav.bot")
	require.NoError(t, err)
	assert.Equal(t, bot.DefaultParams(), p)
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("RACENAV_SIM_BOTS", "3")
	defer os.Unsetenv("RACENAV_SIM_BOTS")

	sim, err := NewConfig().Sim()
	require.NoError(t, err)
	assert.Equal(t, 3, sim.Bots)
}

func TestBotParams(t *testing.T) {
	c := fromYAML(t, `
racenav:
  bot:
    aggression: 0.9
    lookAhead: 3
    push:
      enabled: true
      chance: 0.5
  broken:
    aggression: 2
`)
	p, err := c.BotParams("racenav.bot")
	require.NoError(t, err)
	assert.Equal(t, 0.9, p.Aggression)
	assert.Equal(t, 3.0, p.LookAhead)
	assert.True(t, p.Push.Enabled)
	assert.Equal(t, 0.5, p.Push.Chance)
	assert.Equal(t, bot.DefaultParams().Push.Radius, p.Push.Radius)
	assert.Equal(t, bot.DefaultParams().MaxLaneOffset, p.MaxLaneOffset)

	_, err = c.BotParams("racenav.broken")
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalid, e.CodeFromError(err))
}

func TestProfiles(t *testing.T) {
	c := fromYAML(t, `
racenav:
  bot:
    lookAhead: 2.5
  profiles:
    - name: rookie
      weight: 3
      params:
        aggression: 0.1
        baseSpeedMul: 0.9
    - name: bully
      weight: 1
      params:
        aggression: 0.9
        push:
          enabled: true
`)
	profiles, err := c.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	rookie, bully := profiles[0], profiles[1]
	assert.Equal(t, "rookie", rookie.Name)
	assert.Equal(t, 3.0, rookie.Weight())
	assert.Equal(t, 0.1, rookie.Params.Aggression)
	assert.Equal(t, 0.9, rookie.Params.BaseSpeedMul)
	assert.Equal(t, 2.5, rookie.Params.LookAhead)
	assert.False(t, rookie.Params.Push.Enabled)

	assert.Equal(t, "bully", bully.Name)
	assert.True(t, bully.Params.Push.Enabled)
	assert.Equal(t, 2.5, bully.Params.LookAhead)
}

func TestProfilesFallback(t *testing.T) {
	profiles, err := NewConfig().Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "default", profiles[0].Name)
	assert.Equal(t, 1.0, profiles[0].Weight())
}

func TestInvalidProfile(t *testing.T) {
	c := fromYAML(t, `
racenav:
  profiles:
    - name: reckless
      params:
        edgeAvoidStrength: 9
`)
	_, err := c.Profiles()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalid, e.CodeFromError(err))
}

func TestWorldSettings(t *testing.T) {
	c := fromYAML(t, `
racenav:
  world:
    maxSpeed: 8
    killBelowY: -20
`)
	s, err := c.World()
	require.NoError(t, err)
	assert.Equal(t, 8.0, s.MaxSpeed)
	assert.Equal(t, -20.0, s.KillBelowY)
	assert.Equal(t, 0.45, s.RacerRadius)

	c = fromYAML(t, `
racenav:
  world:
    maxSpeed: 0
`)
	_, err = c.World()
	assert.Error(t, err)
}

func TestSimValidation(t *testing.T) {
	c := fromYAML(t, `
racenav:
  sim:
    bots: 0
`)
	_, err := c.Sim()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalid, e.CodeFromError(err))
}
