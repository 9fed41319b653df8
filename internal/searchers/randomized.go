package searchers

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/yardGo/internal/state"
	"k8s.io/klog/v2"
)

// NewRandomizedSearcher adds randomness to the move taken by an existing Searcher.
// Args:
//
//   - searcher: Baseline Searcher.
//   - randomness (>=0): Amount of randomness to use: it is applied as a divisor to the scores
//     returned by the Searcher.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best scoring move" (exploitation), with zero meaning no randomness.
//   - maxMoveRandomness: starting at this move number (State.NumMoves) no more randomness is used.
//     This allows randomness to be used only earlier in the match. If <= 0, it is always used.
//   - rng: source of randomness. If nil, the global one is used.
func NewRandomizedSearcher(searcher Searcher, randomness float64, maxMoveRandomness int, rng *rand.Rand) Searcher {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	return &randomizedSearcher{searcher: searcher, randomness: randomness, maxMoveRandomness: maxMoveRandomness, rng: rng}
}

// randomizedSearcher is a meta Searcher, that introduces randomness to its scorer.
type randomizedSearcher struct {
	searcher          Searcher
	randomness        float64
	maxMoveRandomness int
	rng               *rand.Rand
}

// Assert randomizedSearcher is a Searcher.
var _ Searcher = &randomizedSearcher{}

// Search implements the Searcher interface.
func (rs *randomizedSearcher) Search(ctx context.Context, s *State) (
	chosen Move, next *State, score float32, movesScores []float32, err error) {
	// Get scores from base searcher for current state.
	chosen, next, score, movesScores, err = rs.searcher.Search(ctx, s)
	if err != nil {
		return
	}

	// If we reached the max move number for randomness, or if the searcher doesn't return scores for the
	// different moves, or if there is only one move possible, or if it is an end-game move,
	// we don't add any randomness.
	if (rs.maxMoveRandomness > 0 && s.NumMoves() >= rs.maxMoveRandomness) || next.IsFinished() || len(movesScores) <= 1 {
		return
	}
	moves := s.LegalMoves(s.Turn())
	if len(movesScores) != len(moves) {
		exceptions.Panicf("randomizedSearcher: Searcher returned %d movesScores, but state has %d moves!?", len(movesScores), len(moves))
	}

	// Calculate probability for each move.
	logits := make([]float64, len(movesScores))
	for ii, score := range movesScores {
		logits[ii] = float64(score) / rs.randomness
	}
	probabilities := softmax(logits)

	// Select from probabilities.
	var chance float64
	if rs.rng != nil {
		chance = rs.rng.Float64()
	} else {
		chance = rand.Float64()
	}
	for moveIdx, value := range probabilities {
		if chance > value && moveIdx < len(probabilities)-1 {
			chance -= value
			continue
		}

		// Found the new move:
		if klog.V(2).Enabled() {
			klog.Infof("randomizedSearcher selection: move=%s, score=%g", moves[moveIdx], movesScores[moveIdx])
		}
		if moves[moveIdx] == chosen {
			// randomizedSearcher chose the same as the base searcher.
			return
		}
		chosen = moves[moveIdx]
		next, _, err = s.Act(chosen)
		score = movesScores[moveIdx]
		return
	}
	// It should not reach here.
	exceptions.Panicf("Nothing selected!? remaining chance=%f, probabilities=%v", chance, probabilities)
	return
}

func softmax(values []float64) (probs []float64) {
	probs = make([]float64, len(values))
	var sum float64

	// Subtract maxValue from all values keep the probability the same, but makes for more numerically stable
	// values.
	maxValue := slices.Max(values)
	// Normalize value for numeric values (smaller exponentials)
	for ii, value := range values {
		probs[ii] = math.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
