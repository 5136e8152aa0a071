package track

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"github.com/tutumagi/racenav/engine/algo"
	e "github.com/tutumagi/racenav/errors"
)

// GateBuilder turns one gate definition of a track document into a Gate.
// def always carries "id" and "kind".
type GateBuilder func(def algo.JSONMap) (Gate, error)

// Load builds a graph from the track document under key, e.g.
//
//	track:
//	  start: w0
//	  waypoints:
//	    - {id: w0, pos: [0, 0, 0], radius: 1, next: [w1]}
//	    - {id: w1, pos: [0, 0, 10], next: [w0], jump: true, gate: g1}
//	  gates:
//	    - {id: g1, kind: movingAlign, stopRadius: 0.7}
//
// build may be nil when the document has no gates.
func Load(v *viper.Viper, key string, build GateBuilder) (*Graph, error) {
	doc, ok := asDoc(v.Get(key))
	if !ok {
		return nil, e.NewError(fmt.Errorf("track document %s not found", key), ErrCodeUnknown)
	}
	return Build(doc, build)
}

func asDoc(raw interface{}) (algo.JSONMap, bool) {
	switch m := raw.(type) {
	case map[string]interface{}:
		return algo.JSONMap(m), true
	case algo.JSONMap:
		return m, true
	}
	return nil, false
}

// Build builds a graph from an already decoded track document
func Build(doc algo.JSONMap, build GateBuilder) (*Graph, error) {
	gates, err := buildGates(doc, build)
	if err != nil {
		return nil, err
	}

	wps, err := doc.GetArray("waypoints")
	if err != nil || len(wps) == 0 {
		return nil, e.NewError(fmt.Errorf("track has no waypoints"), ErrCodeNoStart)
	}

	g := NewGraph()
	links := make(map[string]algo.JSONArray, len(wps))
	for i := range wps {
		def, err := wps.GetMap(i)
		if err != nil {
			return nil, e.NewError(fmt.Errorf("waypoint %d: %w", i, err), ErrCodeUnknown)
		}
		w, err := buildWaypoint(def)
		if err != nil {
			return nil, err
		}
		if gateID := def.StringOr("gate", ""); gateID != "" {
			gate, ok := gates[gateID]
			if !ok {
				return nil, e.NewError(fmt.Errorf("waypoint %s references unknown gate %s", w.ID, gateID), ErrCodeGate,
					map[string]string{"waypoint": w.ID, "gate": gateID})
			}
			w.Gate = gate
		}
		if err := g.Add(w); err != nil {
			return nil, err
		}
		if next, err := def.GetArray("next"); err == nil {
			links[w.ID] = next
		}
	}

	for _, w := range g.All() {
		next := links[w.ID]
		for i := range next {
			id, err := next.GetString(i)
			if err != nil {
				return nil, e.NewError(fmt.Errorf("waypoint %s next[%d]: %w", w.ID, i, err), ErrCodeUnknown)
			}
			if err := g.Link(w.ID, id); err != nil {
				return nil, err
			}
		}
	}

	if start := doc.StringOr("start", ""); start != "" {
		if err := g.SetStart(start); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func buildGates(doc algo.JSONMap, build GateBuilder) (map[string]Gate, error) {
	defs, err := doc.GetArray("gates")
	if err != nil {
		return nil, nil
	}
	gates := make(map[string]Gate, len(defs))
	for i := range defs {
		def, err := defs.GetMap(i)
		if err != nil {
			return nil, e.NewError(fmt.Errorf("gate %d: %w", i, err), ErrCodeGate)
		}
		id, err := def.GetString("id")
		if err != nil {
			return nil, e.NewError(fmt.Errorf("gate %d has no id", i), ErrCodeGate)
		}
		if _, ok := gates[id]; ok {
			return nil, e.NewError(fmt.Errorf("duplicate gate %s", id), ErrCodeDuplicate, map[string]string{"gate": id})
		}
		if build == nil {
			return nil, e.NewError(fmt.Errorf("no gate builder for gate %s", id), ErrCodeGate, map[string]string{"gate": id})
		}
		gate, err := build(def)
		if err != nil {
			return nil, e.NewError(err, ErrCodeGate, map[string]string{"gate": id})
		}
		gates[id] = gate
	}
	return gates, nil
}

func buildWaypoint(def algo.JSONMap) (*Waypoint, error) {
	id, err := def.GetString("id")
	if err != nil {
		return nil, e.NewError(fmt.Errorf("waypoint without id"), ErrCodeUnknown)
	}
	pos, err := Vec3(def, "pos")
	if err != nil {
		return nil, e.NewError(fmt.Errorf("waypoint %s: %w", id, err), ErrCodeUnknown, map[string]string{"waypoint": id})
	}
	fwd, err := Vec3(def, "forward")
	if err != nil {
		fwd = mgl64.Vec3{0, 0, 1}
	}
	return &Waypoint{
		ID:               id,
		Position:         pos,
		Forward:          fwd,
		ActivationRadius: def.Float64Or("radius", DefaultActivationRadius),
		RequiresJump:     def.BoolOr("jump", false),
	}, nil
}

// Vec3 reads a three element array under key
func Vec3(def algo.JSONMap, key string) (mgl64.Vec3, error) {
	arr, err := def.GetArray(key)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	f, err := arr.Floats()
	if err != nil {
		return mgl64.Vec3{}, err
	}
	if len(f) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%s wants 3 components, got %d", key, len(f))
	}
	return mgl64.Vec3{f[0], f[1], f[2]}, nil
}
