package ai_test

import (
	"testing"

	. "github.com/janpfeifer/yardGo/internal/ai"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/features"
	"github.com/janpfeifer/yardGo/internal/parameters"
	. "github.com/janpfeifer/yardGo/internal/state"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquashScore(t *testing.T) {
	assert.Equal(t, float32(0), SquashScore(0))
	assert.InDelta(t, 0.7616, SquashScore(1), 1e-4)
	assert.InDelta(t, -0.7616, SquashScore(-1), 1e-4)
	assert.LessOrEqual(t, SquashScore(1000), WinGameScore)
}

func TestIsEndGameAndScore(t *testing.T) {
	s := NewMatch(BuildGraph(2, TaxiHop(1, 2)), 1, []board.Location{2})
	isEnd, _ := IsEndGameAndScore(s)
	assert.False(t, isEnd)

	captured, _ := ActAll(s, SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi})
	isEnd, score := IsEndGameAndScore(captured)
	assert.True(t, isEnd)
	assert.Equal(t, -WinGameScore, score)
	assert.Equal(t, -WinGameScore, DefaultHeuristic.Score(captured))
}

func TestLastKnownMrX(t *testing.T) {
	g := Ring(12)
	s := NewMatchWithSettings(g, Settings{RevealFrequency: 1}, 5, []board.Location{9})
	assert.Equal(t, g.Center(), LastKnownMrX(s), "never seen: center of the board")
	s, _ = ActAll(s, SingleMove{Player: 0, From: 5, To: 6, Ticket: Taxi})
	assert.Equal(t, board.Location(6), LastKnownMrX(s))
}

func TestHeuristic(t *testing.T) {
	g := Ring(12)
	near := NewMatch(g, 1, []board.Location{3})
	far := NewMatch(g, 1, []board.Location{7})
	nearScore := DefaultHeuristic.Score(near)
	farScore := DefaultHeuristic.Score(far)
	assert.Greater(t, farScore, nearScore, "detectives far away are better for Mr. X")
	for _, score := range []float32{nearScore, farScore} {
		assert.Less(t, score, WinGameScore)
		assert.Greater(t, score, -WinGameScore)
	}

	fewTickets := NewMatch(g, 1, []board.Location{7}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 1)))
	assert.Greater(t, farScore, DefaultHeuristic.Score(fewTickets))

	// Only the position: believing Mr. X is next to the detective is worse for him.
	assert.Greater(t, farScore, DefaultHeuristic.Score(far.AssumeMrXAt(8)))
}

func TestNewHeuristic(t *testing.T) {
	params := parameters.NewFromConfigString("danger=1,center=0,tickets=0.5,ab")
	h, err := NewHeuristic(params)
	require.NoError(t, err)
	assert.Equal(t, Heuristic{Danger: 1, Center: 0, Tickets: 0.5}, h)
	assert.Equal(t, parameters.Params{"ab": ""}, params)

	_, err = NewHeuristic(parameters.NewFromConfigString("danger=lots"))
	assert.Error(t, err)
	assert.Contains(t, DefaultHeuristic.String(), "danger=3")
}

func TestAsBatch(t *testing.T) {
	g := Ring(12)
	states := []*State{NewMatch(g, 1, []board.Location{3}), NewMatch(g, 1, []board.Location{7})}
	batch := AsBatch(DefaultHeuristic)
	assert.Equal(t, []float32{DefaultHeuristic.Score(states[0]), DefaultHeuristic.Score(states[1])},
		batch.BatchScore(states))
	assert.Equal(t, batch, AsBatch(batch))
}

func TestLinear(t *testing.T) {
	g := Ring(12)
	near := NewMatch(g, 1, []board.Location{3})
	far := NewMatch(g, 1, []board.Location{7})
	assert.Greater(t, DefaultLinear.Score(far), DefaultLinear.Score(near))
	assert.Equal(t, []float32{DefaultLinear.Score(near), DefaultLinear.Score(far)},
		DefaultLinear.BatchScore([]*State{near, far}))
	assert.Same(t, DefaultLinear, AsBatch(DefaultLinear))

	captured, _ := ActAll(near, SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi},
		SingleMove{Player: 1, From: 3, To: 2, Ticket: Taxi})
	assert.Equal(t, -WinGameScore, DefaultLinear.Score(captured))

	_, err := NewLinear(map[features.Id][]float32{features.IdTickets: {1}}, 0)
	assert.Error(t, err)
	l, err := NewLinear(nil, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.99*SquashScore(0.5), l.Score(near), 1e-6)
}
