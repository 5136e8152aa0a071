package race

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tutumagi/racenav/track"
)

// Standing of one entrant
type Standing struct {
	Place    int
	Name     string
	Profile  string
	Laps     int
	Progress float64
	Reached  int
	Respawns int
}

func (s Standing) String() string {
	return fmt.Sprintf("%2d. %-12s %-10s laps:%d progress:%.2f waypoints:%d respawns:%d",
		s.Place, s.Name, s.Profile, s.Laps, s.Progress, s.Reached, s.Respawns)
}

// Ranking places entrants by laps, then progress along the main line, then
// waypoints reached
type Ranking struct {
	path *track.RacePath
}

// NewRanking along path; an invalid path ranks by waypoints only
func NewRanking(path *track.RacePath) *Ranking {
	return &Ranking{path: path}
}

// Rank entrants, first place first
func (r *Ranking) Rank(entrants []*Entrant) []Standing {
	out := make([]Standing, 0, len(entrants))
	for _, en := range entrants {
		s := Standing{
			Name:     en.Name,
			Profile:  en.Profile,
			Laps:     en.laps,
			Reached:  en.reached,
			Respawns: en.Racer.Respawns(),
		}
		if r.path != nil && r.path.IsValid() {
			s.Progress = r.path.Progress(en.Racer.Position())
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Laps != b.Laps {
			return a.Laps > b.Laps
		}
		if a.Progress != b.Progress {
			return a.Progress > b.Progress
		}
		return a.Reached > b.Reached
	})
	for i := range out {
		out[i].Place = i + 1
	}
	return out
}

// Format standings one per line
func Format(standings []Standing) string {
	sb := strings.Builder{}
	for _, s := range standings {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
