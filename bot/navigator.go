package bot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/engine/fsm"
	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/engine/utils"
	"github.com/tutumagi/racenav/logger"
	"github.com/tutumagi/racenav/metrics"
	"github.com/tutumagi/racenav/track"
)

// Navigator modes
const (
	ModeApproaching fsm.StateType = iota + 1
	ModeWaitingAtGate
	ModeHoldingAfterJump
)

// ModeName for logs
func ModeName(mode fsm.StateType) string {
	switch mode {
	case ModeApproaching:
		return "approaching"
	case ModeWaitingAtGate:
		return "waiting"
	case ModeHoldingAfterJump:
		return "holding"
	}
	return "none"
}

const (
	creepSpeed       = 0.2
	collectRepick    = 0.5
	stuckRepick      = 0.25
	resetRepick      = 0.2
	minPreWaitBand   = 0.6
	preWaitBandScale = 1.5
)

// Option configures a Navigator
type Option func(n *Navigator)

// WithReporters sends navigation counters to reporters
func WithReporters(reporters ...metrics.Reporter) Option {
	return func(n *Navigator) {
		n.reporters = append(n.reporters, reporters...)
	}
}

// WithLogger replaces the navigator logger
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		n.log = l
	}
}

// WithProfile tags metrics with the bot's personality profile
func WithProfile(name string) Option {
	return func(n *Navigator) {
		n.tags = map[string]string{"profile": name}
	}
}

// Navigator drives one agent around the waypoint graph, producing one
// MoveIntent per tick
type Navigator struct {
	params *Params
	body   Body
	space  SpatialQuery
	clock  Clock
	rnd    Random

	avoid    *AvoidanceField
	look     LookAhead
	steering SteeringBlend
	speed    SpeedTuning
	pusher   *PushAI

	mode  fsm.StateMachine
	state AgentState

	events    []Event
	reporters []metrics.Reporter
	tags      map[string]string
	log       *zap.Logger
}

// NewNavigator drives body from start. space may be nil, then the agent
// ignores crowds and edges.
func NewNavigator(body Body, start *track.Waypoint, params *Params, space SpatialQuery, clock Clock, rnd Random, opts ...Option) *Navigator {
	n := &Navigator{
		params:   params,
		body:     body,
		space:    space,
		clock:    clock,
		rnd:      rnd,
		avoid:    NewAvoidanceField(params, space),
		look:     LookAhead{params: params},
		steering: SteeringBlend{params: params},
		speed:    SpeedTuning{params: params},
		log:      logger.Named("navigator"),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With(zap.String("bot", body.ID()))

	now := clock.Now()
	n.state = AgentState{
		Current:      start,
		First:        start,
		SpawnGrace:   true,
		Steer:        body.Forward(),
		BaseSpeedMul: rnd.Range(params.BaseSpeedMul*0.95, params.BaseSpeedMul*1.05),
		Lane:         NewLaneWander(params, now, rnd),
		Jump:         NewJumpAssist(params.AssistDuration, params.PostJumpMinHold, params.JumpCooldown),
		Progress:     NewPathProgress(params, body.Position()),
	}
	if params.Push.Enabled {
		n.pusher = NewPushAI(params.Push, now, rnd)
	}

	n.initModes()
	return n
}

type modeAction struct {
	nav  *Navigator
	mode fsm.StateType
}

func (a *modeAction) Execute(ctx ...fsm.StateContext) fsm.StateType {
	if a.mode == ModeWaitingAtGate {
		a.nav.state.WaitedFor = 0
	}
	return fsm.Default
}

func (a *modeAction) Tick(dt float64, ctx fsm.StateContext) {
	if a.mode == ModeWaitingAtGate {
		a.nav.state.WaitedFor += dt
	}
}

func (n *Navigator) initModes() {
	all := []fsm.StateType{ModeApproaching, ModeWaitingAtGate, ModeHoldingAfterJump}
	n.mode.States = fsm.States{}
	for _, m := range all {
		n.mode.States[m] = fsm.NewState(&modeAction{nav: n, mode: m}, all...)
	}
	n.mode.StateChange = func(prev, cur fsm.StateType) {
		if prev == ModeWaitingAtGate {
			metrics.ReportSummary(n.reporters, metrics.GateWaitSeconds, n.tags, n.state.WaitedFor)
		}
		n.log.Debug("mode changed", zap.String("from", ModeName(prev)), zap.String("to", ModeName(cur)))
	}
	n.mode.Reset(ModeApproaching)
}

func (n *Navigator) enter(mode fsm.StateType) {
	if err := n.mode.EnterState(mode); err != nil {
		n.log.Warn("mode change rejected", zap.String("to", ModeName(mode)), zap.Error(err))
	}
}

// State of the agent, read only
func (n *Navigator) State() *AgentState {
	return &n.state
}

// Mode the navigator is in
func (n *Navigator) Mode() fsm.StateType {
	return n.mode.Cur
}

// Current target waypoint
func (n *Navigator) Current() *track.Waypoint {
	return n.state.Current
}

// Body driven by the navigator
func (n *Navigator) Body() Body {
	return n.body
}

// Tick computes this frame's intent. A panic inside is logged and turned
// into a keep-going-straight intent.
func (n *Navigator) Tick() TickResult {
	n.events = nil

	var input mgl64.Vec2
	if !utils.RunPanicless(func() { input = n.tick() }) {
		input = n.straightAhead()
		metrics.ReportCount(n.reporters, metrics.NavigatorPanics, n.tags, 1)
	}

	n.mode.Tick(n.clock.Delta(), n)
	n.tickPush()

	res := TickResult{
		Intent: NewMoveIntent(input),
		Events: n.events,
		Mode:   n.mode.Cur,
	}
	if res.Has(EventJumped) {
		res.Intent.RequestJump()
	}
	return res
}

func (n *Navigator) straightAhead() mgl64.Vec2 {
	dir := geom.NormalizeOr(geom.Flat(n.state.Steer), geom.Forward)
	return geom.XZ(dir.Mul(n.state.BaseSpeedMul))
}

func (n *Navigator) emit(ev Event, metric string) {
	n.events = append(n.events, ev)
	if metric != "" {
		metrics.ReportCount(n.reporters, metric, n.tags, 1)
	}
}

func (n *Navigator) tick() mgl64.Vec2 {
	st := &n.state
	if st.Current == nil {
		return mgl64.Vec2{}
	}

	now, dt := n.clock.Now(), n.clock.Delta()
	turn := n.params.TurnResponsiveness * dt
	st.Lane.Tick(n.params, now, n.rnd)

	position := n.body.Position()
	target := st.Current.Position
	toTarget := target.Sub(position)
	distance := toTarget.Len()

	gate := st.Current.Gate
	projected := st.projectedNext()
	stop := StopRadius(gate)
	collect := CollectRadius(st.Current, gate)
	spawnGrace := st.SpawnGrace

	if hold, ok := st.Jump.UpdateHold(gate, distance, stop, toTarget, &st.Steer, st.BaseSpeedMul, now, turn); ok {
		st.Progress.Update(position, target, true, dt)
		n.enter(ModeHoldingAfterJump)
		return hold
	}

	if gate != nil && distance <= math.Max(minPreWaitBand, stop*preWaitBandScale) {
		if !st.Gates.ReadyToPass(gate, st.Current, projected, spawnGrace) {
			var input mgl64.Vec2
			creepStop := math.Max(0.9*stop, stop-0.05)
			if distance > creepStop && geom.LenSqr(toTarget) > geom.Epsilon {
				creep := geom.Normalize(toTarget)
				st.Steer = geom.Slerp(st.Steer, creep, turn)
				input = geom.XZ(creep.Mul(creepSpeed))
			}
			n.beginWait(position, target, dt)
			return input
		}
	}

	collected := false
	if gate != nil && distance <= stop {
		ready := st.Gates.ReadyToPass(gate, st.Current, projected, spawnGrace)
		if !ready && !spawnGrace {
			aim := st.Steer
			if projected != nil {
				aim = projected.Position.Sub(position)
			} else if geom.LenSqr(aim) <= geom.DirEpsilon {
				aim = n.body.Forward()
			}
			if geom.LenSqr(aim) > geom.DirEpsilon {
				st.Steer = geom.Slerp(st.Steer, geom.Normalize(aim), turn)
			}
			n.beginWait(position, target, dt)
			return mgl64.Vec2{}
		} else if st.Waiting && st.WaitingAt == st.Current {
			n.collect(position, now)
			collected = true
		}
	}

	if !collected && distance < collect {
		if gate != nil && !st.Gates.ReadyToPass(gate, st.Current, projected, spawnGrace) {
			n.beginWait(position, target, dt)
			return mgl64.Vec2{}
		}
		n.collect(position, now)
		collected = true
	}

	if collected {
		target = st.Current.Position
		toTarget = target.Sub(position)
		distance = toTarget.Len()
		stop = StopRadius(st.Current.Gate)
		projected = st.projectedNext()
	}

	forward, look := n.look.Compute(position, st.Current, projected, distance, toTarget, st.Steer)
	blend := n.steering.ComputeLaneBlend(st.Current, distance)
	desired := n.steering.ComposeDesired(n.body, position, forward, look, st.Lane.Offset(), blend, n.avoid)
	st.Steer = n.steering.UpdateSteering(st.Steer, desired, dt)

	move := st.Steer.Mul(st.BaseSpeedMul * n.speed.TurnMultiplier(st.Current, projected, position))
	move = n.speed.ApplyApproachSlowdown(move, distance, stop)
	move = st.Jump.ApplyAssist(move, dt)

	if st.Progress.Update(position, st.Current.Position, st.Waiting, dt) {
		n.log.Debug("stuck, repathing", zap.String("waypoint", st.Current.ID))
		n.emit(Event{Kind: EventStuck, Waypoint: st.Current}, metrics.StuckRecoveries)
		n.triggerJump(st.Current, position, now)
		st.Chooser.ForceRepathFrom(st.Current)
		st.Lane.ForceRepickEarly(now, stuckRepick)
	}

	// a jump into a gated waypoint holds from this frame on
	if st.Jump.Phase() == JumpHoldActive {
		n.enter(ModeHoldingAfterJump)
	} else {
		n.enter(ModeApproaching)
	}

	return geom.XZ(move)
}

// beginWait parks the agent at its current gate
func (n *Navigator) beginWait(position, target mgl64.Vec3, dt float64) {
	st := &n.state
	if !st.Waiting || st.WaitingAt != st.Current {
		n.emit(Event{Kind: EventGateWait, Waypoint: st.Current}, metrics.GateWaits)
	}
	st.Waiting = true
	st.WaitingAt = st.Current
	st.Progress.Update(position, target, true, dt)
	n.enter(ModeWaitingAtGate)
}

// collect marks Current reached and moves on to a successor
func (n *Navigator) collect(position mgl64.Vec3, now float64) {
	st := &n.state
	just := st.Current
	jump := just.RequiresJumpOnLeave()

	st.Waiting = false
	st.WaitingAt = nil

	st.Chooser.RememberVisited(just)
	preview := geom.Flat(position.Sub(just.Position))
	if next := st.Chooser.PickNext(just, n.params.Aggression, preview, n.rnd); next != nil {
		st.Current = next
	}
	if st.SpawnGrace && just == st.First {
		st.SpawnGrace = false
	}
	st.Lane.ForceRepickEarly(now, collectRepick)

	n.emit(Event{Kind: EventWaypointReached, Waypoint: just}, metrics.WaypointsReached)
	if just.Gate != nil {
		n.emit(Event{Kind: EventGatePass, Waypoint: just}, metrics.GatePasses)
	}
	if jump {
		n.triggerJump(just, position, now)
	}
}

// triggerJump jumps toward the current target
func (n *Navigator) triggerJump(just *track.Waypoint, position mgl64.Vec3, now float64) {
	st := &n.state

	var forward mgl64.Vec3
	if st.Current != nil {
		forward = st.Current.Position.Sub(position)
	} else {
		forward = just.Forward
	}
	forward = geom.Flat(forward)
	if geom.LenSqr(forward) < geom.DirEpsilon {
		if geom.LenSqr(st.Steer) > geom.DirEpsilon {
			forward = st.Steer
		} else {
			forward = n.body.Forward()
		}
	}
	forward = geom.Normalize(forward)

	var nextGate track.Gate
	if st.Current != nil {
		nextGate = st.Current.Gate
	}
	if st.Jump.TriggerJump(now, forward, nextGate) {
		n.emit(Event{Kind: EventJumped, Waypoint: just}, metrics.Jumps)
	}
}

func (n *Navigator) tickPush() {
	if n.pusher == nil {
		return
	}
	push, ok := n.pusher.Tick(n.clock.Now(), n.body, n.space, n.params.AgentsMask, n.rnd)
	if !ok {
		return
	}
	n.emit(Event{Kind: EventPushed, Push: push}, metrics.Pushes)
}

// ResetToWaypoint puts the agent back on wp, typically after a respawn.
// Hold, assist and stuck memory are dropped; nil is ignored.
func (n *Navigator) ResetToWaypoint(wp *track.Waypoint) {
	if wp == nil {
		return
	}
	old := n.state
	if old.Waiting && old.WaitingAt != nil && old.WaitingAt.Gate != nil {
		old.Gates.Release(old.WaitingAt.Gate)
	}
	next := AgentState{
		Current:      wp,
		First:        old.First,
		SpawnGrace:   wp == old.First,
		Steer:        old.Steer,
		BaseSpeedMul: old.BaseSpeedMul,
		Chooser:      old.Chooser,
		Lane:         old.Lane,
		Jump:         old.Jump,
		Progress:     old.Progress,
		Gates:        old.Gates,
	}
	next.Progress.Reset()
	next.Lane.ForceRepickEarly(n.clock.Now(), resetRepick)
	next.Jump.Reset()

	n.state = next
	n.mode.Reset(ModeApproaching)
	n.log.Debug("reset to waypoint", zap.String("waypoint", wp.ID))
}
