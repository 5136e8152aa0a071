package bot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tutumagi/racenav/engine/geom"
	"github.com/tutumagi/racenav/track"
)

const (
	recentCap = 5

	backDotThreshold = 0.2
	recentPenalty    = 0.3
	repeatPenalty    = 0.2
	maxJumpBonus     = 0.25
)

// WaypointChooser picks among successors with a little randomness, avoiding
// recently visited waypoints and the previous choice.
type WaypointChooser struct {
	recent     map[*track.Waypoint]struct{}
	lastChosen *track.Waypoint
}

// LastChosen successor, nil when forgotten
func (c *WaypointChooser) LastChosen() *track.Waypoint {
	return c.lastChosen
}

// Recent reports whether w is in the recency memory
func (c *WaypointChooser) Recent(w *track.Waypoint) bool {
	_, ok := c.recent[w]
	return ok
}

// RecentLen size of the recency memory
func (c *WaypointChooser) RecentLen() int {
	return len(c.recent)
}

// RememberVisited adds w to the recency memory. Overflowing it clears it and
// keeps only w.
func (c *WaypointChooser) RememberVisited(w *track.Waypoint) {
	if w == nil {
		return
	}
	c.remember(w)
}

// remember inserts w; a new entry into a full memory starts it over with w
func (c *WaypointChooser) remember(w *track.Waypoint) {
	if _, ok := c.recent[w]; ok {
		return
	}
	if c.recent == nil || len(c.recent) >= recentCap {
		c.recent = make(map[*track.Waypoint]struct{}, recentCap)
	}
	c.recent[w] = struct{}{}
}

// PickNext scores the successors of from and returns the best one. Successors
// lying along preview (the direction from from back toward the agent) are
// skipped unless nothing else is left. from itself and nil links are only
// returned when they are all there is.
func (c *WaypointChooser) PickNext(from *track.Waypoint, aggression float64, preview mgl64.Vec3, rnd Random) *track.Waypoint {
	if !from.HasNext() {
		return nil
	}

	options := from.Next
	valid := make([]*track.Waypoint, 0, len(options))
	filtered := make([]*track.Waypoint, 0, len(options))

	hasPreview := geom.LenSqr(preview) > geom.Epsilon
	previewDir := geom.Normalize(preview)

	for _, w := range options {
		if w == nil || w == from {
			continue
		}
		valid = append(valid, w)
		if hasPreview {
			toCandidate := geom.Flat(w.Position.Sub(from.Position))
			if geom.LenSqr(toCandidate) > geom.Epsilon && geom.Normalize(toCandidate).Dot(previewDir) > backDotThreshold {
				continue
			}
		}
		filtered = append(filtered, w)
	}
	if len(filtered) == 0 {
		filtered = valid
	}
	if len(filtered) == 0 {
		// only self loops or nil links
		for _, w := range options {
			if w != nil {
				filtered = append(filtered, w)
			}
		}
		if len(filtered) == 0 {
			return nil
		}
	}

	bestIndex := 0
	bestScore := math.Inf(-1)
	jumpBonus := geom.Lerp(0, maxJumpBonus, aggression)
	for i, w := range filtered {
		score := rnd.Value()
		if c.Recent(w) {
			score -= recentPenalty
		}
		if w != nil && w.RequiresJump {
			score += jumpBonus
		}
		if w == c.lastChosen {
			score -= repeatPenalty
		}
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	c.lastChosen = filtered[bestIndex]
	return c.lastChosen
}

// ForceRepathFrom marks current as recent and forgets the last choice
func (c *WaypointChooser) ForceRepathFrom(current *track.Waypoint) {
	if current != nil {
		c.remember(current)
	}
	c.lastChosen = nil
}
