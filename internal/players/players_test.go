package players_test

import (
	"context"
	"testing"

	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/players"
	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line is 1-2-3-4-5 by taxi.
func line() *board.Graph {
	return BuildGraph(5, TaxiHop(1, 2), TaxiHop(2, 3), TaxiHop(3, 4), TaxiHop(4, 5))
}

func TestRegistryNew(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"ab", "first", "greedy", "random"}, r.Keywords())
	assert.Equal(t, []string{"easy", "hard", "medium"}, r.Difficulties())
	assert.Equal(t, "greedy", r.Resolve(""))
	assert.Equal(t, "ab,max_depth=3", r.Resolve("ab,max_depth=3"))

	p, err := r.New("easy")
	require.NoError(t, err)
	require.IsType(t, &SearcherPlayer{}, p)
	assert.Equal(t, "greedy", p.(*SearcherPlayer).Name)

	p, err = r.New("hard")
	require.NoError(t, err)
	assert.Contains(t, p.(*SearcherPlayer).String(), "max_depth=4, max_time=1s")

	p, err = r.New("ab,max_depth=3,danger=5")
	require.NoError(t, err)
	assert.Contains(t, p.(*SearcherPlayer).String(), "danger=5")

	p, err = r.New("random,seed=7")
	require.NoError(t, err)
	assert.IsType(t, &Random{}, p)

	for _, config := range []string{"unknown", "greedy,ab", "ab,depth=3", "random,seed=x", "greedy,randomness=lots"} {
		_, err = r.New(config)
		assert.Errorf(t, err, "config %q", config)
	}
	_, err = r.New("ab,depth=3")
	assert.ErrorContains(t, err, "depth")
}

func TestChooseMove(t *testing.T) {
	ctx := context.Background()
	r := DefaultRegistry()
	s := NewMatch(line(), 3, []board.Location{1}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 4)))
	for _, difficulty := range []string{"easy", "medium", "hard", "first", "random,seed=1"} {
		move, err := r.ChooseMove(ctx, s, PlayerMrX, difficulty)
		require.NoError(t, err)
		assert.Truef(t, s.IsLegal(move), "difficulty %q chose %s", difficulty, move)
	}
	move, err := r.ChooseMove(ctx, s, PlayerMrX, "easy")
	require.NoError(t, err)
	assert.Equal(t, Move(SingleMove{Player: 0, From: 3, To: 4, Ticket: Taxi}), move, "away from the detective")

	_, err = r.ChooseMove(ctx, s, 1, "easy")
	assert.True(t, errors.Is(err, ErrIllegalMove), "not on turn")
	_, err = r.ChooseMove(ctx, s, PlayerMrX, "nonsense")
	assert.Error(t, err)

	// Single legal move: no player is needed.
	s, _ = ActAll(s, move)
	move, err = NewRegistry().ChooseMove(ctx, s, 1, "nonsense")
	require.NoError(t, err)
	assert.Equal(t, Move(SingleMove{Player: 1, From: 1, To: 2, Ticket: Taxi}), move)

	s, _ = ActAll(s, move, SingleMove{Player: 0, From: 4, To: 3, Ticket: Taxi}, SingleMove{Player: 1, From: 2, To: 3, Ticket: Taxi})
	require.True(t, s.IsFinished())
	_, err = r.ChooseMove(ctx, s, s.Turn(), "easy")
	assert.True(t, errors.Is(err, ErrGameOver))
}

func TestChooseMoveNoLegalMoves(t *testing.T) {
	s := NewMatch(line(), 5, []board.Location{1}, WithTickets(1, Tickets{}))
	s, _ = ActAll(s, SingleMove{Player: 0, From: 5, To: 4, Ticket: Taxi})
	require.Equal(t, PlayerNum(1), s.Turn())
	_, err := DefaultRegistry().ChooseMove(context.Background(), s, 1, "easy")
	assert.True(t, errors.Is(err, searchers.ErrNoLegalMoves))
}

func TestScripted(t *testing.T) {
	ctx := context.Background()
	s := NewMatch(line(), 3, []board.Location{1})
	moves := s.LegalMoves(PlayerMrX)
	move, err := First{}.Play(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, moves[0], move)

	r := DefaultRegistry()
	p1, err := r.New("random,seed=42")
	require.NoError(t, err)
	p2, err := r.New("random,seed=42")
	require.NoError(t, err)
	for range 10 {
		m1, err := p1.Play(ctx, s)
		require.NoError(t, err)
		m2, err := p2.Play(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, m1, m2, "same seed, same moves")
		assert.Contains(t, moves, m1)
	}

	move, err = NewRandom(nil).Play(ctx, s)
	require.NoError(t, err)
	assert.Contains(t, moves, move)
}

func TestAlphaBetaScorers(t *testing.T) {
	r := DefaultRegistry()
	p, err := r.New("ab,scorer=linear,max_depth=1")
	require.NoError(t, err)
	assert.Contains(t, p.(*SearcherPlayer).String(), "linear")
	_, err = r.New("ab,scorer=neural")
	assert.Error(t, err)
	_, err = r.New("ab,scorer=linear,danger=3")
	assert.ErrorContains(t, err, "danger", "heuristic weights only apply to the heuristic scorer")
}
