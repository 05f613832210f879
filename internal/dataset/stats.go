package dataset

import (
	"regexp"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// leadingFrames takes the first number of a startup cell such as "12",
// "4-6" or "8(10)"
var leadingFrames = regexp.MustCompile(`^\s*(\d+)`)

// FrameStats summarises the startup frames of a character's moves
type FrameStats struct {
	Moves   int     `json:"moves" yaml:"moves"`
	Sampled int     `json:"sampled" yaml:"sampled"`
	Mean    float64 `json:"mean" yaml:"mean"`
	Median  float64 `json:"median" yaml:"median"`
	Fastest float64 `json:"fastest" yaml:"fastest"`
}

// Stats computes startup statistics for a character. Moves whose startup
// cell has no leading number are counted but not sampled.
func (d *Dataset) Stats(id uint8) (FrameStats, bool) {
	moves, ok := d.Moves(id)
	if !ok {
		return FrameStats{}, false
	}

	result := FrameStats{Moves: len(moves)}
	startups := make([]float64, 0, len(moves))
	for _, m := range moves {
		if v, ok := StartupFrames(m.Startup); ok {
			startups = append(startups, v)
		}
	}
	result.Sampled = len(startups)
	if len(startups) == 0 {
		return result, true
	}

	sort.Float64s(startups)
	result.Mean = stat.Mean(startups, nil)
	result.Median = stat.Quantile(0.5, stat.Empirical, startups, nil)
	result.Fastest = startups[0]
	return result, true
}

// StartupFrames parses the leading frame count of a startup cell
func StartupFrames(cell string) (float64, bool) {
	m := leadingFrames.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
