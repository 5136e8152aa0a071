package fsm

import (
	"fmt"

	e "github.com/tutumagi/racenav/errors"
)

// ErrStateReject the transition is not allowed from the current state
var ErrStateReject = e.NewError(fmt.Errorf("state transition rejected"), "FSM_001")

// ErrStateNoAction the target state has no action
var ErrStateNoAction = e.NewError(fmt.Errorf("state has no action"), "FSM_002")

const (
	// Default is the state before the first transition
	Default StateType = 0
)

// StateType state identifier
type StateType int32

// StateContext argument passed to an Action when its state is entered
type StateContext interface{}

// Action runs when its state is entered and on every tick while it is current
type Action interface {
	// Execute may return another state to chain into, or Default to stay
	Execute(ctx ...StateContext) StateType
	Tick(dt float64, ctx StateContext)
}

// State pairs an action with the states reachable from it
type State struct {
	Action Action
	States map[StateType]struct{}
}

// NewState new state that may transition to states
func NewState(act Action, states ...StateType) State {
	s := State{
		Action: act,
		States: map[StateType]struct{}{},
	}
	for _, state := range states {
		s.States[state] = struct{}{}
	}
	return s
}

// States by type
type States map[StateType]State

// StateMachine state machine. Not goroutine safe; owned by one agent.
type StateMachine struct {
	Prev   StateType
	Cur    StateType
	States States

	StateChange func(prev StateType, cur StateType)
}

func (s *StateMachine) getNextState(next StateType) (StateType, error) {
	if state, ok := s.States[s.Cur]; ok {
		if state.States != nil {
			if _, ok := state.States[next]; ok {
				return next, nil
			}
		}
	}
	return Default, ErrStateReject
}

// EnterState moves to stateTyp. Entering the current state again is a no-op
// and not an error.
func (s *StateMachine) EnterState(stateTyp StateType, ctx ...StateContext) error {
	for {
		if stateTyp == s.Cur {
			return nil
		}

		nextStateTyp, err := s.getNextState(stateTyp)
		if err != nil {
			return err
		}

		state, ok := s.States[nextStateTyp]
		if !ok || state.Action == nil {
			return ErrStateNoAction
		}

		s.Prev = s.Cur
		s.Cur = nextStateTyp

		if s.StateChange != nil {
			s.StateChange(s.Prev, s.Cur)
		}

		nextNextStateTyp := state.Action.Execute(ctx...)
		if nextNextStateTyp == s.Cur || nextNextStateTyp == Default {
			return nil
		}

		stateTyp = nextNextStateTyp
	}
}

// Reset forces the machine into stateTyp without checking transitions or
// running the action. Prev becomes Default.
func (s *StateMachine) Reset(stateTyp StateType) {
	s.Prev = Default
	s.Cur = stateTyp
}

// Tick the current state's action
func (s *StateMachine) Tick(dt float64, ctx StateContext) {
	if stat, ok := s.States[s.Cur]; ok && stat.Action != nil {
		stat.Action.Tick(dt, ctx)
	}
}
