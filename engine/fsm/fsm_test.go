package fsm

import (
	"testing"

	. "github.com/go-playground/assert/v2"
)

const (
	Off StateType = 1
	On  StateType = 2
	Out StateType = 3
)

type countAction struct {
	entered int
	ticked  float64
	next    StateType
}

func (a *countAction) Execute(ctx ...StateContext) StateType {
	a.entered++
	return a.next
}

func (a *countAction) Tick(dt float64, ctx StateContext) {
	a.ticked += dt
}

func TestLightFSM(t *testing.T) {
	off, on := &countAction{}, &countAction{}
	changes := 0
	fsm := &StateMachine{
		States: States{
			Default: NewState(nil, Off),
			Off:     NewState(off, On),
			On:      NewState(on, Off),
		},
		StateChange: func(prev, cur StateType) { changes++ },
	}

	Equal(t, fsm.EnterState(Off, nil), nil)
	Equal(t, off.entered, 1)

	// re-entry is idempotent
	Equal(t, fsm.EnterState(Off, nil), nil)
	Equal(t, off.entered, 1)
	Equal(t, changes, 1)

	Equal(t, fsm.EnterState(On, nil), nil)
	Equal(t, fsm.Prev, Off)
	Equal(t, fsm.Cur, On)

	Equal(t, fsm.EnterState(Out, nil), ErrStateReject)
	Equal(t, fsm.Cur, On)

	fsm.Tick(0.5, nil)
	fsm.Tick(0.25, nil)
	Equal(t, on.ticked, 0.75)
	Equal(t, changes, 2)
}

func TestNoActionFSM(t *testing.T) {
	fsm := &StateMachine{
		States: States{
			Default: NewState(nil, On),
			On:      NewState(nil, Off),
		},
	}

	Equal(t, fsm.EnterState(On, nil), ErrStateNoAction)
	Equal(t, fsm.Cur, Default)
}

func TestChainedFSM(t *testing.T) {
	out := &countAction{}
	fsm := &StateMachine{
		States: States{
			Default: NewState(nil, On),
			On:      NewState(&countAction{next: Out}, Out),
			Out:     NewState(out, On),
		},
	}

	Equal(t, fsm.EnterState(On), nil)
	Equal(t, fsm.Cur, Out)
	Equal(t, fsm.Prev, On)
	Equal(t, out.entered, 1)

	fsm.Reset(On)
	Equal(t, fsm.Cur, On)
	Equal(t, fsm.Prev, Default)
}
