package state_test

import (
	"testing"

	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/state"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGraph:
//
//	taxi: 1-2, 1-3, 2-4, 5-6
//	bus: 1-3, 3-6
//	underground: 1-5
func smallGraph() *board.Graph {
	return BuildGraph(6, TaxiHop(1, 2), TaxiHop(1, 3), BusHop(1, 3), UndergroundHop(1, 5), TaxiHop(2, 4), BusHop(3, 6), TaxiHop(5, 6))
}

func TestLegalMovesSingle(t *testing.T) {
	g := smallGraph()
	s := NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, Tickets{Taxi: 1, Bus: 1}))
	assert.Equal(t, []Move{
		SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Taxi},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Bus},
	}, s.LegalMoves(PlayerMrX))

	s = NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, OnlyTickets(Black, 1)))
	assert.Equal(t, []Move{
		SingleMove{Player: 0, From: 1, To: 2, Ticket: Black},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Black},
		SingleMove{Player: 0, From: 1, To: 5, Ticket: Black},
	}, s.LegalMoves(PlayerMrX), "black covers every transport, once per destination")

	assert.Empty(t, s.LegalMoves(7), "invalid seat")
	assert.Empty(t, s.LegalMoves(PlayerInvalid), "invalid seat")
}

func TestLegalMovesOccupancy(t *testing.T) {
	g := smallGraph()
	s := NewMatch(g, 3, []board.Location{1, 2})
	assert.Equal(t, []Move{
		SingleMove{Player: 1, From: 1, To: 3, Ticket: Taxi},
		SingleMove{Player: 1, From: 1, To: 3, Ticket: Bus},
		SingleMove{Player: 1, From: 1, To: 5, Ticket: Underground},
	}, s.LegalMoves(1), "detectives can't move onto detectives, but can move onto Mr. X")
	assert.Equal(t, []Move{SingleMove{Player: 2, From: 2, To: 4, Ticket: Taxi}}, s.LegalMoves(2))

	// Mr. X is never blocked by detectives.
	s = NewMatch(g, 1, []board.Location{2, 3}, WithTickets(PlayerMrX, OnlyTickets(Taxi, 1)))
	assert.Equal(t, []Move{
		SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Taxi},
	}, s.LegalMoves(PlayerMrX))
}

func TestLegalMovesDouble(t *testing.T) {
	g := smallGraph()
	s := NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, Tickets{Taxi: 1, Bus: 1, DoubleTicket: 1}))
	moves := s.LegalMoves(PlayerMrX)
	assert.Equal(t, []Move{
		SingleMove{Player: 0, From: 1, To: 2, Ticket: Taxi},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Taxi},
		SingleMove{Player: 0, From: 1, To: 3, Ticket: Bus},
		DoubleMove{Player: 0, From: 1, FirstTicket: Taxi, Via: 3, SecondTicket: Bus, To: 1},
		DoubleMove{Player: 0, From: 1, FirstTicket: Taxi, Via: 3, SecondTicket: Bus, To: 6},
		DoubleMove{Player: 0, From: 1, FirstTicket: Bus, Via: 3, SecondTicket: Taxi, To: 1},
	}, moves, "one taxi ticket can't be used twice, and landing on a detective is allowed")
	for _, move := range moves {
		assert.Truef(t, s.IsLegal(move), "move %s", move)
	}

	// With two taxi tickets, taxi-taxi double moves become available.
	s = NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, Tickets{Taxi: 2, DoubleTicket: 1}))
	assert.Contains(t, s.LegalMoves(PlayerMrX),
		Move(DoubleMove{Player: 0, From: 1, FirstTicket: Taxi, Via: 2, SecondTicket: Taxi, To: 4}))

	// Without a double ticket there are no double moves.
	s = NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, Tickets{Taxi: 2}))
	for _, move := range s.LegalMoves(PlayerMrX) {
		assert.IsType(t, SingleMove{}, move)
	}

	// Detectives never double move.
	s = NewMatch(g, 3, []board.Location{1}, WithTickets(1, Tickets{Taxi: 5, Bus: 5, DoubleTicket: 1}))
	for _, move := range s.LegalMoves(1) {
		assert.IsType(t, SingleMove{}, move)
	}
}

func TestNoDoubleMoveOnLastRound(t *testing.T) {
	s := NewMatch(Ring(10), 1, []board.Location{6},
		WithTickets(PlayerMrX, Tickets{Taxi: 30, DoubleTicket: 1}), WithTickets(1, Tickets{}))
	// Two moves per round: Mr. X moves and the detective skips.
	s, _ = PlayFirst(s, 2*(MaxRounds-2))
	require.Equal(t, MaxRounds-1, s.Round())
	require.Equal(t, PlayerMrX, s.Turn())
	hasDouble := func(moves []Move) bool {
		for _, move := range moves {
			if _, ok := move.(DoubleMove); ok {
				return true
			}
		}
		return false
	}
	assert.True(t, hasDouble(s.LegalMoves(PlayerMrX)))

	s, _ = PlayFirst(s, 2)
	require.Equal(t, MaxRounds, s.Round())
	require.Equal(t, PlayerMrX, s.Turn())
	assert.False(t, hasDouble(s.LegalMoves(PlayerMrX)))
	assert.NotEmpty(t, s.LegalMoves(PlayerMrX))
}

func TestIsLegal(t *testing.T) {
	g := smallGraph()
	s := NewMatch(g, 1, []board.Location{6}, WithTickets(PlayerMrX, Tickets{Taxi: 1, Bus: 1}))
	assert.True(t, s.IsLegal(SingleMove{Player: 0, From: 1, To: 3, Ticket: Bus}))
	assert.False(t, s.IsLegal(nil))
	assert.False(t, s.IsLegal(SingleMove{Player: 0, From: 1, To: 5, Ticket: Underground}), "no ticket")
	assert.False(t, s.IsLegal(SingleMove{Player: 0, From: 1, To: 4, Ticket: Taxi}), "not adjacent")
	assert.False(t, s.IsLegal(SingleMove{Player: 0, From: 2, To: 4, Ticket: Taxi}), "wrong origin")
	assert.False(t, s.IsLegal(SingleMove{Player: 0, From: 1, To: 2, Ticket: DoubleTicket}), "not a hop ticket")
	assert.False(t, s.IsLegal(SingleMove{Player: 0, From: 1, To: 2, Ticket: NumTickets}), "invalid ticket")
	assert.False(t, s.IsLegal(DoubleMove{Player: 0, From: 1, FirstTicket: Taxi, Via: 3, SecondTicket: Bus, To: 6}),
		"no double ticket")
	assert.False(t, s.IsLegal(SingleMove{Player: 9, From: 1, To: 2, Ticket: Taxi}), "invalid seat")
}

func TestMoveTicketsUsed(t *testing.T) {
	assert.Equal(t, OnlyTickets(Bus, 1), SingleMove{Ticket: Bus}.TicketsUsed())
	assert.Equal(t, Tickets{Taxi: 1, Black: 1, DoubleTicket: 1},
		DoubleMove{FirstTicket: Black, SecondTicket: Taxi}.TicketsUsed())
	assert.Equal(t, Tickets{Underground: 2, DoubleTicket: 1},
		DoubleMove{FirstTicket: Underground, SecondTicket: Underground}.TicketsUsed())
}

func TestParseTicket(t *testing.T) {
	for ticket := range NumTickets {
		got, err := ParseTicket(ticket.String())
		require.NoError(t, err)
		assert.Equal(t, ticket, got)
	}
	for ticket := range NumTickets {
		got, err := ParseTicket(ticket.ShortName())
		require.NoError(t, err)
		assert.Equal(t, ticket, got)
	}
	got, err := ParseTicket("U")
	require.NoError(t, err)
	assert.Equal(t, Underground, got)
	got, err = ParseTicket("b")
	require.NoError(t, err)
	assert.Equal(t, Bus, got)
	got, err = ParseTicket(" K ")
	require.NoError(t, err)
	assert.Equal(t, Black, got)
	_, err = ParseTicket("x")
	assert.Error(t, err)
	_, err = ParseTicket("ferry")
	assert.Error(t, err)
	assert.Equal(t, "taxi=4 bus=3 underground=3 black=5 double=2", MrXTickets.String())
	assert.Equal(t, "none", Tickets{}.String())
}

func TestTicketsArithmetic(t *testing.T) {
	tickets := MrXTickets
	assert.True(t, tickets.Covers(Tickets{Black: 5, DoubleTicket: 1}))
	assert.False(t, tickets.Covers(Tickets{Taxi: 5}))
	assert.Equal(t, Tickets{Taxi: 3, Bus: 3, Underground: 3, Black: 5, DoubleTicket: 1},
		tickets.Sub(Tickets{Taxi: 1, DoubleTicket: 1}))
	assert.Equal(t, MrXTickets, tickets, "inventories are values")
	assert.Equal(t, Tickets{Taxi: 5, Bus: 3, Underground: 3, Black: 5, DoubleTicket: 2}, tickets.Add(OnlyTickets(Taxi, 1)))
	assert.Equal(t, Tickets{Taxi: 2, Bus: 1, Underground: 1, Black: 5, DoubleTicket: 2}, tickets.AddTransport(-2))
	assert.Equal(t, Tickets{Black: 5, DoubleTicket: 2}, tickets.AddTransport(-10))
	assert.Equal(t, 17, tickets.Total())
}
