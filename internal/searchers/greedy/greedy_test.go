package greedy_test

import (
	"context"
	"testing"

	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/searchers/greedy"
	. "github.com/janpfeifer/yardGo/internal/state"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line is 1-2-3-4-5 by taxi, with center 3.
func line() *board.Graph {
	return BuildGraph(5, TaxiHop(1, 2), TaxiHop(2, 3), TaxiHop(3, 4), TaxiHop(4, 5))
}

func TestMrXRunsAway(t *testing.T) {
	s := NewMatch(line(), 3, []board.Location{1}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 4)))
	move, next, score, scores, err := NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Move(SingleMove{Player: 0, From: 3, To: 4, Ticket: Taxi}), move)
	assert.Equal(t, float32(3), score)
	assert.Equal(t, []float32{1, 3}, scores)
	assert.Equal(t, board.Location(4), next.MrX().Location)

	// With double moves it goes further.
	s = NewMatch(line(), 3, []board.Location{1}, WithTickets(PlayerMrX, Tickets{Taxi: 4, DoubleTicket: 1}))
	move, _, score, _, err = NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, board.Location(5), move.Destination())
	assert.Equal(t, float32(4), score)
}

func TestDetectivesChase(t *testing.T) {
	// Mr. X was never seen: detectives head to the center.
	s := NewMatch(line(), 5, []board.Location{2})
	s, _ = ActAll(s, SingleMove{Player: 0, From: 5, To: 4, Ticket: Taxi})
	move, _, _, scores, err := NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Move(SingleMove{Player: 1, From: 2, To: 3, Ticket: Taxi}), move)
	assert.Equal(t, []float32{-2, 0}, scores)

	// Mr. X revealed: detectives go for him, and they capture when they can.
	s = NewMatchWithSettings(line(), Settings{RevealFrequency: 1}, 5, []board.Location{1})
	s, _ = ActAll(s, SingleMove{Player: 0, From: 5, To: 4, Ticket: Taxi})
	move, _, _, _, err = NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, board.Location(2), move.Destination())

	s = NewMatchWithSettings(line(), Settings{RevealFrequency: 1}, 4, []board.Location{2})
	s, _ = ActAll(s, SingleMove{Player: 0, From: 4, To: 3, Ticket: Black})
	_, next, _, _, err := NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Capture, next.EndReason())
}

func TestSingleMoveAndErrors(t *testing.T) {
	s := NewMatch(line(), 1, []board.Location{5}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 1)))
	move, next, score, scores, err := NewSearcher().Search(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Move(SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi}), move)
	assert.Equal(t, float32(0), score)
	assert.Equal(t, []float32{0}, scores)
	assert.Equal(t, PlayerNum(1), next.Turn())

	// Detective without tickets.
	s = NewMatch(line(), 1, []board.Location{5}, WithTickets(1, Tickets{}))
	s, _ = ActAll(s, SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi})
	_, _, _, _, err = NewSearcher().Search(context.Background(), s)
	assert.True(t, errors.Is(err, searchers.ErrNoLegalMoves))

	// Cancelled context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s = NewMatch(line(), 3, []board.Location{1})
	_, _, _, _, err = NewSearcher().Search(ctx, s)
	assert.True(t, errors.Is(err, context.Canceled))
}
