package racenav

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutumagi/racenav/engine/utils"
	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/track/gates"
	"github.com/tutumagi/racenav/world"
)

func TestNewRaceNotConfigured(t *testing.T) {
	configured := app.configured
	app.configured = false
	defer func() { app.configured = configured }()

	_, err := NewRace()
	assert.Error(t, err)
	assert.Equal(t, ErrCodeNotConfigured, e.CodeFromError(err))
}

func TestLoadSceneDefaultTrack(t *testing.T) {
	doc, err := readTrack("")
	require.NoError(t, err)

	clock := utils.NewFrameClock(0)
	w := world.New(world.DefaultSettings())
	factory := gates.NewFactory(clock, w)
	graph, err := LoadScene(doc, w, factory)
	require.NoError(t, err)

	assert.Equal(t, 8, graph.Len())
	assert.Equal(t, "w0", graph.Start().ID)
	w5, ok := graph.Get("w5")
	require.True(t, ok)
	assert.Len(t, w5.Next, 2)
	w3, _ := graph.Get("w3")
	assert.NotNil(t, w3.Gate)

	// three pads and the door arm
	require.Len(t, w.Boxes(), 4)
	assert.Equal(t, "door/arm", w.Boxes()[3].ID)
	assert.Equal(t, world.LayerObstacles, w.Boxes()[3].Layer)

	h, ok := w.GroundHeight(graph.Start().Position)
	require.True(t, ok)
	assert.InDelta(t, 0.0, h, 1e-9)
	_, ok = w.GroundHeight(graph.Start().Position.Add(mgl64.Vec3{0, 0, 16}))
	assert.False(t, ok, "the jump gap has no ground")
}

func TestReadTrackFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "racenav")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "line.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
track:
  waypoints:
    - {id: a, pos: [0, 0, 0], next: [b]}
    - {id: b, pos: [0, 0, 5], next: [a]}
  pads:
    - {top: [0, 0, 2.5], half: [3, 5]}
  boxes:
    - {id: wall, min: [2, 0, 0], max: [3, 2, 5]}
`), 0o644))

	doc, err := readTrack(file)
	require.NoError(t, err)
	w := world.New(world.DefaultSettings())
	graph, err := LoadScene(doc, w, gates.NewFactory(utils.NewFrameClock(0), w))
	require.NoError(t, err)
	assert.Equal(t, 2, graph.Len())
	require.Len(t, w.Boxes(), 2)
	assert.Equal(t, "pad0", w.Boxes()[0].ID)
	assert.Equal(t, "wall", w.Boxes()[1].ID)

	_, err = readTrack(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSceneBadPad(t *testing.T) {
	doc, err := readTrack("")
	require.NoError(t, err)
	doc["pads"] = []interface{}{map[string]interface{}{"top": []interface{}{0, 0, 0}}}

	w := world.New(world.DefaultSettings())
	_, err = LoadScene(doc, w, gates.NewFactory(utils.NewFrameClock(0), w))
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	v := viper.New()
	v.Set("racenav.sim.bots", 3)
	v.Set("racenav.sim.duration", 3*time.Second)
	v.Set("racenav.sim.dt", 0.05)
	v.Set("racenav.sim.seed", 7)
	v.Set("racenav.sim.report", time.Second)
	v.Set("logger.level", "warn")
	Configure("racesim-test", v)

	standings, err := Start()
	require.NoError(t, err)
	require.Len(t, standings, 3)
	for i, s := range standings {
		assert.Equal(t, i+1, s.Place)
	}
	assert.False(t, app.running)
}

func TestStartAfterShutdown(t *testing.T) {
	v := viper.New()
	v.Set("racenav.sim.bots", 2)
	v.Set("racenav.sim.duration", time.Second)
	v.Set("racenav.sim.dt", 0.05)
	v.Set("racenav.sim.seed", 3)
	v.Set("logger.level", "warn")
	Configure("racesim-test", v)

	Shutdown()
	Shutdown()

	standings, err := Start()
	require.NoError(t, err)
	require.Len(t, standings, 2)

	select {
	case <-app.dieChan:
		t.Fatal("the race channel stayed closed after Start")
	default:
	}
}
