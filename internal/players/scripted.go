package players

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
)

// First is a scripted Controller that always plays the first legal move.
type First struct{}

// Play implements Controller.
func (First) Play(_ context.Context, s *State) (Move, error) {
	moves, err := searchers.LegalMovesOrErr(s)
	if err != nil {
		return nil, err
	}
	return moves[0], nil
}

// Random is a scripted Controller that plays uniformly random legal moves.
// It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random player. If rng is nil the global source of randomness is used.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Play implements Controller.
func (r *Random) Play(_ context.Context, s *State) (Move, error) {
	moves, err := searchers.LegalMovesOrErr(s)
	if err != nil {
		return nil, err
	}
	if r.rng == nil {
		return moves[rand.IntN(len(moves))], nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return moves[r.rng.IntN(len(moves))], nil
}
