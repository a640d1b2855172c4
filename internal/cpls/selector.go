package cpls

import (
	"math/rand"
	"slices"
)

const (
	NeighborhoodSwapRooms      = "swap_rooms"
	NeighborhoodSwapTimes      = "swap_times"
	NeighborhoodMoveAssignment = "move_assignment"
	NeighborhoodChainSwap      = "chain_swap"
)

var neighborhoodNames = []string{
	NeighborhoodSwapRooms,
	NeighborhoodSwapTimes,
	NeighborhoodMoveAssignment,
	NeighborhoodChainSwap,
}

type neighborhoodStats struct {
	attempts             int
	improvements         int
	avgImprovement       float64
	selectionProbability float64
}

// AdaptiveNeighborhoodSelector keeps per-operator success statistics and
// draws the next operator with an adaptive pursuit rule: probability mass
// moves toward the best-scoring operator, bounded below by a floor. The
// probabilities are never re-normalized; the draw divides by the running
// total instead.
type AdaptiveNeighborhoodSelector struct {
	names []string
	stats map[string]*neighborhoodStats
	rng   *rand.Rand
}

func NewAdaptiveNeighborhoodSelector(rng *rand.Rand) *AdaptiveNeighborhoodSelector {
	selector := &AdaptiveNeighborhoodSelector{
		names: neighborhoodNames,
		stats: make(map[string]*neighborhoodStats, len(neighborhoodNames)),
		rng:   rng,
	}
	for _, name := range selector.names {
		selector.stats[name] = &neighborhoodStats{selectionProbability: 0.25}
	}
	return selector
}

// SelectNeighborhood draws an operator name weighted by the current
// selection probabilities.
func (selector *AdaptiveNeighborhoodSelector) SelectNeighborhood() string {
	total := 0.0
	for _, name := range selector.names {
		total += selector.stats[name].selectionProbability
	}

	draw := selector.rng.Float64() * total
	for _, name := range selector.names {
		draw -= selector.stats[name].selectionProbability
		if draw < 0 {
			return name
		}
	}
	return selector.names[len(selector.names)-1]
}

// UpdateStats records the outcome of a valid move and adjusts the
// selection probabilities. Failed moves are not reported.
func (selector *AdaptiveNeighborhoodSelector) UpdateStats(name string, improved bool, improvement float64) {
	s := selector.stats[name]
	s.attempts++
	if improved {
		s.improvements++
		s.avgImprovement = (s.avgImprovement*float64(s.improvements-1) + improvement) / float64(s.improvements)
	}

	selector.updateProbabilities()
}

func (selector *AdaptiveNeighborhoodSelector) updateProbabilities() {
	scores := make([]float64, len(selector.names))
	for i, name := range selector.names {
		s := selector.stats[name]
		successRate := 0.5
		if s.attempts > 0 {
			successRate = float64(s.improvements) / float64(s.attempts)
		}
		scores[i] = successRate * (1 + s.avgImprovement/100)
	}

	maxScore := slices.Max(scores)

	const alpha = 0.1 // Learning rate
	const pMin = 0.05 // Probability floor

	// Every operator tied on the maximum score is pursued toward 1
	for i, name := range selector.names {
		s := selector.stats[name]
		if scores[i] == maxScore {
			s.selectionProbability += alpha * (1 - s.selectionProbability)
		} else {
			s.selectionProbability += alpha * (pMin - s.selectionProbability)
		}
	}
}

// Probability reports the current selection probability of an operator.
func (selector *AdaptiveNeighborhoodSelector) Probability(name string) float64 {
	return selector.stats[name].selectionProbability
}
