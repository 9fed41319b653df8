package searchers_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/searchers"
	"github.com/janpfeifer/yardGo/internal/searchers/greedy"
	. "github.com/janpfeifer/yardGo/internal/state"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// star has Mr. X at the center 1, with 6 leaves around and a detective far away.
func star() *State {
	g := BuildGraph(9, TaxiHop(1, 2), TaxiHop(1, 3), TaxiHop(1, 4), TaxiHop(1, 5), TaxiHop(1, 6), TaxiHop(1, 7), TaxiHop(7, 8), TaxiHop(8, 9))
	return NewMatch(g, 1, []board.Location{9}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 5)))
}

func TestRandomizedSearcher(t *testing.T) {
	s := star()
	base := greedy.NewSearcher()
	assert.Equal(t, Searcher(base), NewRandomizedSearcher(base, 0, 0, nil), "no randomness")

	rng := rand.New(rand.NewPCG(1, 2))
	searcher := NewRandomizedSearcher(base, 100, 0, rng)
	destinations := make(map[board.Location]int)
	for range 200 {
		move, next, _, _, err := searcher.Search(context.Background(), s)
		require.NoError(t, err)
		require.True(t, s.IsLegal(move))
		require.Equal(t, move.Destination(), next.MrX().Location)
		destinations[move.Destination()]++
	}
	assert.Greater(t, len(destinations), 2, "large randomness explores many moves: %v", destinations)

	// Tiny randomness always picks the best: the leaf farthest from the detective.
	searcher = NewRandomizedSearcher(base, 1e-3, 0, rng)
	for range 20 {
		move, _, _, _, err := searcher.Search(context.Background(), s)
		require.NoError(t, err)
		assert.NotEqual(t, board.Location(7), move.Destination())
	}

	// After maxMoveRandomness, it's the base searcher.
	searcher = NewRandomizedSearcher(base, 100, 1, rng)
	moved, _ := ActAll(s, SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi},
		SingleMove{Player: 1, From: 9, To: 8, Ticket: Taxi})
	want, _, _, _, err := base.Search(context.Background(), moved)
	require.NoError(t, err)
	for range 20 {
		got, _, _, _, err := searcher.Search(context.Background(), moved)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestLegalMovesOrErr(t *testing.T) {
	s := star()
	moves, err := LegalMovesOrErr(s)
	require.NoError(t, err)
	assert.Len(t, moves, 6)

	s, _ = ActAll(s, SingleMove{Player: 0, From: 1, To: 7, Ticket: Taxi}, SingleMove{Player: 1, From: 9, To: 8, Ticket: Taxi},
		SingleMove{Player: 0, From: 7, To: 8, Ticket: Taxi})
	require.True(t, s.IsFinished())
	_, err = LegalMovesOrErr(s)
	assert.True(t, errors.Is(err, ErrNoLegalMoves))
}
