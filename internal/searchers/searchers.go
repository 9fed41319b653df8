// Package searchers defines the Searcher interface implemented by the move selection algorithms,
// see sub-packages greedy and alphabeta.
package searchers

import (
	"context"

	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
)

// ErrNoLegalMoves is returned (wrapped) when asked to choose a move for a player that has none.
var ErrNoLegalMoves = errors.New("no legal moves")

// Searcher is the interface that any of the search algorithms
// must adhere to be valid.
type Searcher interface {
	// Search returns the move to take for the player on turn, along with the updated State (after taking the move)
	// and the expected score of taking that move, from the point of view of the player moving (higher is better).
	//
	// Optionally, it can also return the score for each of the legal moves, in the order of State.LegalMoves.
	// Some algorithms (e.g.: alpha-beta pruning) don't provide good approximations to those, so they return it nil.
	//
	// It returns an error wrapping ErrNoLegalMoves if the player has no legal moves, or the context error
	// if ctx is cancelled during the search.
	Search(ctx context.Context, s *State) (move Move, next *State, score float32, movesScores []float32, err error)
}

// LegalMovesOrErr returns the legal moves of the player on turn, or an error wrapping ErrNoLegalMoves if
// there are none (or the match is over).
func LegalMovesOrErr(s *State) ([]Move, error) {
	moves := s.LegalMoves(s.Turn())
	if len(moves) == 0 {
		if s.IsFinished() {
			return nil, errors.Wrapf(ErrNoLegalMoves, "match is over (%s won)", s.Winner())
		}
		return nil, errors.Wrapf(ErrNoLegalMoves, "%s can't move", s.Player(s.Turn()).Name)
	}
	return moves, nil
}

// Only returns the result of a search when there is only one legal move: it doesn't need evaluation.
func Only(s *State, move Move) (Move, *State, float32, []float32, error) {
	next, _, err := s.Act(move)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	return move, next, 0, []float32{0}, nil
}
