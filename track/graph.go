package track

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	e "github.com/tutumagi/racenav/errors"
)

// Error codes returned while building a graph
const (
	ErrCodeDuplicate = "TRK_001"
	ErrCodeUnknown   = "TRK_002"
	ErrCodeGate      = "TRK_003"
	ErrCodeNoStart   = "TRK_004"
)

// DefaultActivationRadius used when a waypoint does not set one
const DefaultActivationRadius = 1.0

// Graph is the directed waypoint graph of one level
type Graph struct {
	byID  map[string]*Waypoint
	order []*Waypoint
	start *Waypoint
}

// NewGraph empty graph
func NewGraph() *Graph {
	return &Graph{
		byID: make(map[string]*Waypoint, 32),
	}
}

// Add a waypoint. The first waypoint added becomes the start unless
// SetStart says otherwise.
func (g *Graph) Add(w *Waypoint) error {
	if w == nil || w.ID == "" {
		return e.NewError(fmt.Errorf("waypoint without id"), ErrCodeUnknown)
	}
	if _, ok := g.byID[w.ID]; ok {
		return e.NewError(fmt.Errorf("duplicate waypoint %s", w.ID), ErrCodeDuplicate, map[string]string{"waypoint": w.ID})
	}
	if w.ActivationRadius <= 0 {
		w.ActivationRadius = DefaultActivationRadius
	}
	g.byID[w.ID] = w
	g.order = append(g.order, w)
	if g.start == nil {
		g.start = w
	}
	return nil
}

// AddAt is a shorthand for Add with only a position
func (g *Graph) AddAt(id string, pos mgl64.Vec3, radius float64) (*Waypoint, error) {
	w := &Waypoint{ID: id, Position: pos, ActivationRadius: radius}
	if err := g.Add(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Link appends successors to from, in order
func (g *Graph) Link(from string, to ...string) error {
	src, ok := g.byID[from]
	if !ok {
		return e.NewError(fmt.Errorf("unknown waypoint %s", from), ErrCodeUnknown, map[string]string{"waypoint": from})
	}
	for _, id := range to {
		dst, ok := g.byID[id]
		if !ok {
			return e.NewError(fmt.Errorf("unknown successor %s of %s", id, from), ErrCodeUnknown, map[string]string{"waypoint": id})
		}
		src.Next = append(src.Next, dst)
	}
	return nil
}

// SetStart picks the start waypoint
func (g *Graph) SetStart(id string) error {
	w, ok := g.byID[id]
	if !ok {
		return e.NewError(fmt.Errorf("unknown start waypoint %s", id), ErrCodeNoStart, map[string]string{"waypoint": id})
	}
	g.start = w
	return nil
}

// Attach sets the gate of waypoint id
func (g *Graph) Attach(id string, gate Gate) error {
	w, ok := g.byID[id]
	if !ok {
		return e.NewError(fmt.Errorf("gate on unknown waypoint %s", id), ErrCodeGate, map[string]string{"waypoint": id})
	}
	w.Gate = gate
	return nil
}

// Start waypoint, nil for an empty graph
func (g *Graph) Start() *Waypoint {
	return g.start
}

// Get waypoint by id
func (g *Graph) Get(id string) (*Waypoint, bool) {
	w, ok := g.byID[id]
	return w, ok
}

// All waypoints in insertion order
func (g *Graph) All() []*Waypoint {
	return g.order
}

// Len number of waypoints
func (g *Graph) Len() int {
	return len(g.order)
}

// Validate checks the graph can be raced: a start exists and every
// successor reference is set.
func (g *Graph) Validate() error {
	if g.start == nil {
		return e.NewError(fmt.Errorf("graph has no start waypoint"), ErrCodeNoStart)
	}
	for _, w := range g.order {
		for i, n := range w.Next {
			if n == nil {
				return e.NewError(fmt.Errorf("waypoint %s successor %d is nil", w.ID, i), ErrCodeUnknown, map[string]string{"waypoint": w.ID})
			}
		}
	}
	return nil
}

// Path walks first successors from the start until a waypoint repeats or
// the chain ends, giving the main line used for race progress.
func (g *Graph) Path() []mgl64.Vec3 {
	seen := make(map[*Waypoint]struct{}, len(g.order))
	points := make([]mgl64.Vec3, 0, len(g.order))
	for w := g.start; w != nil; w = w.FirstNext() {
		if _, ok := seen[w]; ok {
			break
		}
		seen[w] = struct{}{}
		points = append(points, w.Position)
	}
	return points
}
