package ai

import (
	"fmt"

	"github.com/janpfeifer/yardGo/internal/features"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
)

// Linear scores states with a linear model over features.Vector, squashed to
// (-maxHeuristicScore, maxHeuristicScore).
type Linear struct {
	// Weights has one weight per feature, plus the bias as the last element.
	Weights []float32
}

// Assert Linear is a BatchScorer.
var _ BatchScorer = (*Linear)(nil)

// NewLinear creates a Linear scorer with the given weights per feature: features left out have weight 0.
// The weights for each feature must have the dimension of the feature.
func NewLinear(weights map[features.Id][]float32, bias float32) (*Linear, error) {
	l := &Linear{Weights: make([]float32, features.Dim+1)}
	for id, w := range weights {
		if id >= features.IdNumFeatureIds {
			return nil, errors.Errorf("unknown feature id %d", id)
		}
		spec := features.Specs[id]
		if len(w) != spec.Dim {
			return nil, errors.Errorf("feature %s has dimension %d, got %d weights", spec.Name, spec.Dim, len(w))
		}
		copy(l.Weights[spec.VecIndex:], w)
	}
	l.Weights[features.Dim] = bias
	return l, nil
}

// DefaultLinear is a hand-tuned linear model.
var DefaultLinear = func() *Linear {
	l, err := NewLinear(map[features.Id][]float32{
		features.IdDanger:         {-3},
		features.IdMinDistance:    {0.2},
		features.IdNumClose:       {-0.5, -0.2},
		features.IdCenterHops:     {-0.1},
		features.IdMobility:       {0.02, 0.05},
		features.IdTickets:        {0.05, 0.05, 0.05, 0.05, 0.1},
		features.IdRoundsLeft:     {-0.02},
		features.IdRoundsToReveal: {0.02},
	}, 0)
	if err != nil {
		panic(err)
	}
	return l
}()

// Score implements Scorer.
func (l *Linear) Score(s *State) float32 {
	if isEnd, score := IsEndGameAndScore(s); isEnd {
		return score
	}
	return l.scoreFeatures(features.Vector(s))
}

// BatchScore implements BatchScorer.
func (l *Linear) BatchScore(states []*State) []float32 {
	scores := make([]float32, len(states))
	for ii, s := range states {
		scores[ii] = l.Score(s)
	}
	return scores
}

func (l *Linear) scoreFeatures(f []float32) float32 {
	sum := l.Weights[len(l.Weights)-1]
	for ii, value := range f {
		sum += value * l.Weights[ii]
	}
	return maxHeuristicScore * SquashScore(sum) / WinGameScore
}

func (l *Linear) String() string {
	return fmt.Sprintf("linear(%d features)", features.Dim)
}
