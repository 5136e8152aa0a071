package bot

import (
	"math"

	"github.com/tutumagi/racenav/engine/geom"
)

// LaneWander holds the lateral offset an agent keeps from the racing line
// and when it next changes lanes.
type LaneWander struct {
	offset     float64
	nextRepick float64
}

// NewLaneWander picks a first lane at now
func NewLaneWander(p *Params, now float64, rnd Random) LaneWander {
	var l LaneWander
	l.repick(p, now, rnd)
	return l
}

// Offset current lateral offset
func (l *LaneWander) Offset() float64 {
	return l.offset
}

// NextRepick time of the next lane change
func (l *LaneWander) NextRepick() float64 {
	return l.nextRepick
}

// Tick changes lane once the repick time has come
func (l *LaneWander) Tick(p *Params, now float64, rnd Random) {
	if now >= l.nextRepick {
		l.repick(p, now, rnd)
	}
}

// ForceRepickEarly brings the next lane change forward to at most lead
// seconds from now. lead is at least 0.1s.
func (l *LaneWander) ForceRepickEarly(now, lead float64) {
	l.nextRepick = math.Min(l.nextRepick, now+math.Max(0.1, lead))
}

func (l *LaneWander) repick(p *Params, now float64, rnd Random) {
	max := geom.Lerp(p.MaxLaneOffset*0.4, p.MaxLaneOffset, p.Aggression)
	l.offset = rnd.Range(-max, max)
	l.nextRepick = now + rnd.Range(p.LaneRepickIntervalMin, p.LaneRepickIntervalMax)
}
