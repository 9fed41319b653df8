// Package ai (Artificial Intelligence) defines standard interfaces that AIs for the game
// have to implement, and the heuristics used to score positions.
//
// Scores are always given from Mr. X's perspective: +WinGameScore is a sure win for Mr. X, and
// -WinGameScore a sure win for the detectives.
package ai

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/generics"
	. "github.com/janpfeifer/yardGo/internal/state"
)

// WinGameScore for Mr. X winning. For the detectives winning it is -WinGameScore.
// We make these +1 and -1, so it's easy to put a tanh(x) on the heuristics to get a
// value from +1 to -1.
const WinGameScore = float32(1)

// SquashScore converts any score to a value between +WinGameScore and -WinGameScore
// by using then tanh(x) function -- a type of S curve.
func SquashScore(x float32) float32 {
	return math32.Tanh(x) * WinGameScore
}

// Scorer returns a score (value) for a given state, see package documentation.
type Scorer interface {
	Score(s *State) float32
	String() string
}

// BatchScorer is a Scorer that handles batches.
type BatchScorer interface {
	Scorer

	// BatchScore aggregate state scoring in batches.
	BatchScore(states []*State) []float32
}

// BatchScorerProxy is a trivial implementation of a BatchScorer, with no efficiency gains.
type BatchScorerProxy struct {
	Scorer
}

// Assert BatchScorerProxy implements BatchScorer
var _ BatchScorer = BatchScorerProxy{}

// BatchScore calls Score for each state of the batch.
func (p BatchScorerProxy) BatchScore(states []*State) []float32 {
	return generics.SliceMap(states, p.Scorer.Score)
}

// AsBatch returns scorer as a BatchScorer, wrapping it with a BatchScorerProxy if needed.
func AsBatch(scorer Scorer) BatchScorer {
	if batch, ok := scorer.(BatchScorer); ok {
		return batch
	}
	return BatchScorerProxy{scorer}
}

// IsEndGameAndScore returns weather it's the end of the game, and the hard-coded score of the win.
// If isEnd is false, the score should be ignored.
func IsEndGameAndScore(s *State) (isEnd bool, score float32) {
	if !s.IsFinished() {
		return false, 0
	}
	if s.Winner() == SideMrX {
		return true, WinGameScore
	}
	return true, -WinGameScore
}

// LastKnownMrX returns where the detectives believe Mr. X to be: his location if currently revealed,
// the last revealed location otherwise, or the center of the board if he was never revealed.
func LastKnownMrX(s *State) board.Location {
	if loc, known := s.LastKnownMrX(); known {
		return loc
	}
	return s.Graph().Center()
}
