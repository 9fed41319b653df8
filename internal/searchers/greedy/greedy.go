// Package greedy implements the "easy" Searcher: it looks only at the destination of each move.
//
// Mr. X picks the move that maximizes the distance to the nearest detective-class player, and
// detectives pick the move that minimizes the distance to where Mr. X was last seen (see
// ai.LastKnownMrX). Ties are resolved by the first move in State.LegalMoves order.
package greedy

import (
	"context"

	"github.com/janpfeifer/yardGo/internal/ai"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/generics"
	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
	"k8s.io/klog/v2"
)

// Searcher implements searchers.Searcher. It holds no state, and it is safe for concurrent use.
type Searcher struct{}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = Searcher{}

// NewSearcher returns a greedy searchers.Searcher.
func NewSearcher() Searcher { return Searcher{} }

// Search implements searchers.Searcher. The scores returned are the distances (negative for
// detectives, since for them shorter is better).
func (Searcher) Search(ctx context.Context, s *State) (Move, *State, float32, []float32, error) {
	moves, err := searchers.LegalMovesOrErr(s)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	if len(moves) == 1 {
		return searchers.Only(s, moves[0])
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, 0, nil, err
	}
	scores := Scores(s, moves)
	best := generics.ArgMax(scores)
	next, _, err := s.Act(moves[best])
	if err != nil {
		return nil, nil, 0, nil, err
	}
	if klog.V(3).Enabled() {
		klog.Infof("greedy: %s chose %s, score=%g", s.Player(s.Turn()).Name, moves[best], scores[best])
	}
	return moves[best], next, scores[best], scores, nil
}

// Scores returns the greedy score of each move of the player on turn: for Mr. X the distance from
// the destination to the nearest detective-class player, for detectives minus the distance from
// the destination to ai.LastKnownMrX.
func Scores(s *State, moves []Move) []float32 {
	g := s.Graph()
	scores := make([]float32, len(moves))
	if s.Turn() == PlayerMrX {
		detectives := s.Detectives()
		for ii, move := range moves {
			nearest := board.Unreachable
			for _, detective := range detectives {
				nearest = min(nearest, g.Distance(move.Destination(), detective.Location))
			}
			scores[ii] = float32(nearest)
		}
		return scores
	}
	target := ai.LastKnownMrX(s)
	for ii, move := range moves {
		scores[ii] = -float32(g.Distance(move.Destination(), target))
	}
	return scores
}
