// Package statetest provides helper functions to create tests using small boards and matches.
package statetest

import (
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/state"
)

// Hop is an edge between two locations, used to build test boards.
type Hop struct {
	A, B      board.Location
	Transport board.Transport
}

// BuildGraph with locations 1 to numLocations and the given hops. It panics if the board is invalid.
func BuildGraph(numLocations int, hops ...Hop) *board.Graph {
	nodes := make([]board.Node, numLocations)
	for ii := range nodes {
		nodes[ii].ID = board.Location(ii + 1)
	}
	for _, hop := range hops {
		node := &nodes[hop.A-1]
		node.Edges = append(node.Edges, board.Edge{Destination: hop.B, Transport: hop.Transport})
	}
	return must.M1(board.New(nodes))
}

// TaxiHop returns a taxi hop between a and b.
func TaxiHop(a, b board.Location) Hop { return Hop{A: a, B: b, Transport: board.Taxi} }

// BusHop returns a bus hop between a and b.
func BusHop(a, b board.Location) Hop { return Hop{A: a, B: b, Transport: board.Bus} }

// UndergroundHop returns an underground hop between a and b.
func UndergroundHop(a, b board.Location) Hop { return Hop{A: a, B: b, Transport: board.Underground} }

// Ring builds a board of n locations connected in a circle by taxi: 1-2-...-n-1.
func Ring(n int) *board.Graph {
	hops := make([]Hop, 0, n)
	for ii := 1; ii <= n; ii++ {
		hops = append(hops, TaxiHop(board.Location(ii), board.Location(ii%n+1)))
	}
	return BuildGraph(n, hops...)
}

// NewMatch creates a match with one Mr. X starting at mrXAt and one detective for each of
// detectivesAt, with default settings. It panics if the match can't be created.
func NewMatch(g *board.Graph, mrXAt board.Location, detectivesAt []board.Location, options ...Option) *State {
	return NewMatchWithSettings(g, DefaultSettings(), mrXAt, detectivesAt, options...)
}

// NewMatchWithSettings is like NewMatch, but with the given settings.
func NewMatchWithSettings(g *board.Graph, settings Settings, mrXAt board.Location,
	detectivesAt []board.Location, options ...Option) *State {
	configs := []PlayerConfig{{Role: MrX}}
	for range detectivesAt {
		configs = append(configs, PlayerConfig{Role: Detective})
	}
	options = append([]Option{WithStartPools([]board.Location{mrXAt}, detectivesAt)}, options...)
	return must.M1(New(g, settings, configs, options...))
}

// OnlyTickets returns an inventory with count tickets of the given kind only.
func OnlyTickets(ticket Ticket, count int) (t Tickets) {
	t[ticket] = count
	return
}

// ActAll applies the moves in order, failing on the first error. nil moves are skips.
// It returns the final state and all events.
func ActAll(s *State, moves ...Move) (*State, []Event) {
	final, events, err := Replay(s, moves)
	must.M(err)
	return final, events
}

// PlayFirst moves every player with its first legal move (or skips it, if it has none) until
// the match is over or maxMoves is reached. It returns the final state and all events.
func PlayFirst(s *State, maxMoves int) (*State, []Event) {
	var events []Event
	for ii := 0; ii < maxMoves && !s.IsFinished(); ii++ {
		var newEvents []Event
		if moves := s.LegalMoves(s.Turn()); len(moves) > 0 {
			s, newEvents = ActAll(s, moves[0])
		} else {
			s, newEvents = must.M2(s.Skip())
		}
		events = append(events, newEvents...)
	}
	return s, events
}

// Kinds returns the kinds of the events, in order.
func Kinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for ii, e := range events {
		kinds[ii] = e.Kind
	}
	return kinds
}
