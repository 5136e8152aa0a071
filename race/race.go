// Package race runs a headless race: every frame it advances the gates,
// ticks each navigator in turn and feeds the intents to the world.
package race

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/bot"
	"github.com/tutumagi/racenav/config"
	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/engine/utils"
	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/logger"
	"github.com/tutumagi/racenav/metrics"
	"github.com/tutumagi/racenav/track"
	"github.com/tutumagi/racenav/world"
)

// ErrCodeNoProfile is returned when the roster has nothing to draw
const ErrCodeNoProfile = "RCE_001"

// Updater is anything advanced once per frame before the racers, e.g. the
// gate factory's obstacles
type Updater interface {
	Update(dt float64)
}

// Entrant is one racer and the navigator driving it
type Entrant struct {
	Name    string
	Profile string
	Racer   *world.Racer
	Nav     *bot.Navigator

	laps        int
	reached     int
	lastReached *track.Waypoint
}

// Laps completed
func (en *Entrant) Laps() int {
	return en.laps
}

// respawnAt is the waypoint a fallen racer restarts from: the last one it
// reached, where the world put it back
func (en *Entrant) respawnAt(g *track.Graph) *track.Waypoint {
	if en.lastReached != nil {
		return en.lastReached
	}
	return g.Start()
}

// Option configures a Race
type Option func(r *Race)

// WithReporters for race and navigator metrics
func WithReporters(reporters ...metrics.Reporter) Option {
	return func(r *Race) {
		r.reporters = append(r.reporters, reporters...)
	}
}

// WithUpdaters advanced every frame
func WithUpdaters(updaters ...Updater) Option {
	return func(r *Race) {
		r.updaters = append(r.updaters, updaters...)
	}
}

// Race owns the frame clock and ticks everything sequentially
type Race struct {
	graph     *track.Graph
	world     *world.World
	clock     *utils.FrameClock
	rnd       *utils.Rand
	ranking   *Ranking
	entrants  []*Entrant
	updaters  []Updater
	reporters []metrics.Reporter
	log       *zap.Logger
}

// New race on graph inside w. clock is shared with the gates.
func New(graph *track.Graph, w *world.World, clock *utils.FrameClock, seed int64, opts ...Option) (*Race, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	r := &Race{
		graph:   graph,
		world:   w,
		clock:   clock,
		rnd:     utils.NewRand(seed),
		ranking: NewRanking(track.NewRacePath(graph.Path())),
		log:     logger.Named("race"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Entrants in spawn order
func (r *Race) Entrants() []*Entrant {
	return r.entrants
}

// Clock of the race
func (r *Race) Clock() *utils.FrameClock {
	return r.clock
}

// Populate spawns n racers behind the start waypoint on a shuffled lane
// grid, each drawing a profile from roster
func (r *Race) Populate(roster *Roster, n int, spacing float64) error {
	profiles := roster.Draw(r.rnd, n)
	start := r.graph.Start()
	fwd := geom.NormalizeOr(geom.Flat(start.Forward), geom.Forward)
	side := geom.Side(fwd)

	spread := utils.MinInt(2, n/2)
	perRow := 2*spread + 1
	var lanes []int
	for i := 0; i < n; i++ {
		if i%perRow == 0 {
			lanes = utils.WashShuffleArray(r.rnd, utils.Lanes(spread))
		}
		row := i / perRow
		pos := start.Position.
			Add(side.Mul(float64(lanes[i%perRow]) * spacing)).
			Sub(fwd.Mul(float64(row+1) * spacing))

		p := profiles[i]
		if p == nil {
			return e.NewError(fmt.Errorf("no profile with a positive weight"), ErrCodeNoProfile)
		}
		r.Enter(fmt.Sprintf("bot%02d", i+1), p, pos, fwd)
	}
	return nil
}

// Enter a single racer at pos. Unrestricted masks in the profile are
// narrowed to the world's agent and ground layers.
func (r *Race) Enter(name string, profile *config.Profile, pos, fwd mgl64.Vec3) *Entrant {
	params := profile.Params.Clone()
	if params.AgentsMask == bot.AllLayers {
		params.AgentsMask = world.LayerAgents
	}
	if params.GroundMask == bot.AllLayers {
		params.GroundMask = world.LayerGround
	}

	racer := r.world.Spawn(name, pos, fwd)
	nav := bot.NewNavigator(racer, r.graph.Start(), params, r.world, r.clock, utils.NewRand(r.rnd.Int63()),
		bot.WithReporters(r.reporters...),
		bot.WithProfile(profile.Name),
		bot.WithLogger(r.log.Named("bot").With(zap.String("name", name))),
	)
	en := &Entrant{Name: name, Profile: profile.Name, Racer: racer, Nav: nav}
	r.entrants = append(r.entrants, en)
	return en
}

// Step advances the race one frame of dt seconds
func (r *Race) Step(dt float64) {
	begin := time.Now()
	r.clock.Advance(dt)
	now := r.clock.Now()

	for _, u := range r.updaters {
		u.Update(dt)
	}
	r.world.Sync()

	waiting := 0
	for _, en := range r.entrants {
		res := en.Nav.Tick()
		r.handle(en, res, now)
		if res.Mode == bot.ModeWaitingAtGate {
			waiting++
		}
		if r.world.Move(en.Racer, &res.Intent, now, dt) {
			en.Nav.ResetToWaypoint(en.respawnAt(r.graph))
			metrics.ReportCount(r.reporters, metrics.Respawns, map[string]string{"profile": en.Profile}, 1)
		}
	}
	r.world.ResolveContacts()

	metrics.ReportGauge(r.reporters, metrics.WaitingAgents, nil, float64(waiting))
	metrics.ReportGauge(r.reporters, metrics.Racers, nil, float64(len(r.entrants)))
	metrics.ReportSummary(r.reporters, metrics.TickDuration, nil, float64(time.Since(begin))/float64(time.Millisecond))
}

func (r *Race) handle(en *Entrant, res bot.TickResult, now float64) {
	for _, ev := range res.Events {
		switch ev.Kind {
		case bot.EventWaypointReached:
			en.reached++
			en.lastReached = ev.Waypoint
			en.Racer.SetCheckpoint(ev.Waypoint.Position)
			if ev.Waypoint == r.graph.Start() && en.reached > 1 {
				en.laps++
				r.log.Info("lap", zap.String("racer", en.Name), zap.Int("laps", en.laps))
			}
		case bot.EventPushed:
			if r.world.ApplyPush(en.Racer, ev.Push, now) {
				r.log.Debug("push", zap.String("racer", en.Name), zap.String("target", ev.Push.TargetID))
			}
		case bot.EventStuck:
			r.log.Debug("stuck", zap.String("racer", en.Name), zap.Stringer("waypoint", ev.Waypoint))
		}
	}
}

// Run steps until duration of simulated time has passed or ctx is done.
// Standings are logged every report of simulated time when report > 0.
func (r *Race) Run(ctx context.Context, duration time.Duration, dt float64, report time.Duration) []Standing {
	end := r.clock.Now() + duration.Seconds()
	nextReport := r.clock.Now() + report.Seconds()
	if report <= 0 {
		nextReport = math.Inf(1)
	}

	for r.clock.Now() < end {
		select {
		case <-ctx.Done():
			r.log.Warn("race interrupted", zap.Error(ctx.Err()), zap.Float64("at", r.clock.Now()))
			return r.Standings()
		default:
		}

		r.Step(dt)
		if r.clock.Now() >= nextReport {
			nextReport += report.Seconds()
			r.log.Info("standings", zap.Float64("t", r.clock.Now()), zap.String("leader", r.leader()))
		}
	}
	return r.Standings()
}

func (r *Race) leader() string {
	s := r.Standings()
	if len(s) == 0 {
		return ""
	}
	return s[0].Name
}

// Standings right now
func (r *Race) Standings() []Standing {
	return r.ranking.Rank(r.entrants)
}
