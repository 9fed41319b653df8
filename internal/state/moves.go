package state

import (
	"fmt"
	"iter"
	"slices"

	"github.com/janpfeifer/yardGo/internal/board"
)

// Move is either a SingleMove or a DoubleMove. Both are comparable values, so they can be
// used as map keys and compared with ==.
type Move interface {
	// Seat of the player making the move.
	Seat() PlayerNum

	// Origin is the location of the player before the move.
	Origin() board.Location

	// Destination is the final location of the player.
	Destination() board.Location

	// TicketsUsed returns the tickets debited by the move.
	TicketsUsed() Tickets

	String() string

	isMove()
}

// SingleMove is one hop between adjacent locations, using one ticket.
type SingleMove struct {
	Player   PlayerNum
	From, To board.Location
	Ticket   Ticket
}

func (m SingleMove) Seat() PlayerNum { return m.Player }
func (m SingleMove) Origin() board.Location { return m.From }
func (m SingleMove) Destination() board.Location { return m.To }
func (m SingleMove) isMove() {}

func (m SingleMove) TicketsUsed() (used Tickets) {
	if m.Ticket < NumTickets {
		used[m.Ticket] = 1
	}
	return
}

func (m SingleMove) String() string {
	return fmt.Sprintf("#%d %d -%s-> %d", m.Player, m.From, m.Ticket, m.To)
}

// DoubleMove is two chained hops in one turn, only available to Mr. X. It uses one DoubleTicket
// plus one ticket per hop.
type DoubleMove struct {
	Player       PlayerNum
	From         board.Location
	FirstTicket  Ticket
	Via          board.Location
	SecondTicket Ticket
	To           board.Location
}

func (m DoubleMove) Seat() PlayerNum { return m.Player }
func (m DoubleMove) Origin() board.Location { return m.From }
func (m DoubleMove) Destination() board.Location { return m.To }
func (m DoubleMove) isMove() {}

func (m DoubleMove) TicketsUsed() (used Tickets) {
	used[DoubleTicket]++
	for _, ticket := range []Ticket{m.FirstTicket, m.SecondTicket} {
		if ticket < NumTickets {
			used[ticket]++
		}
	}
	return
}

func (m DoubleMove) String() string {
	return fmt.Sprintf("#%d %d -%s-> %d -%s-> %d (double)", m.Player, m.From, m.FirstTicket, m.Via,
		m.SecondTicket, m.To)
}

// hopDestinations iterates over the destinations from loc using the ticket, in ascending order.
// For Black it is the union of all transports, without repetitions.
func (s *State) hopDestinations(loc board.Location, ticket Ticket) iter.Seq[board.Location] {
	if ticket != Black {
		return s.graph.NeighborsIter(loc, board.Transport(ticket))
	}
	return func(yield func(board.Location) bool) {
		var all []board.Location
		for _, t := range board.Transports {
			all = append(all, s.graph.Neighbors(loc, t)...)
		}
		slices.Sort(all)
		for _, dest := range slices.Compact(all) {
			if !yield(dest) {
				return
			}
		}
	}
}

// blockedFor returns whether a detective-class player p can't move to dest because another
// detective-class player is there. Mr. X is never blocked, and Mr. X's location never blocks:
// moving there is a capture.
func (s *State) blockedFor(p PlayerNum, dest board.Location) bool {
	if p == PlayerMrX {
		return false
	}
	occupant := s.occupiedBy(dest, p)
	return occupant != PlayerInvalid && occupant != PlayerMrX
}

// canDoubleMove returns whether the player p may attempt double moves now.
func (s *State) canDoubleMove(p PlayerNum) bool {
	return p == PlayerMrX && s.players[p].Tickets.Has(DoubleTicket) && s.round < MaxRounds
}

// MovesIter iterates over the legal moves of player p, ordered by ticket (in enum order) and
// then by destination. Double moves, if any, come after all single moves.
//
// It yields nothing if the match is over or p is not a valid seat. It doesn't check whether it
// is p's turn: use LegalMoves(s.Turn()) for the moves that can be acted now.
func (s *State) MovesIter(p PlayerNum) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		if s.finished || p < 0 || int(p) >= len(s.players) {
			return
		}
		player := &s.players[p]
		from := player.Location
		for _, ticket := range HopTickets {
			if !player.Tickets.Has(ticket) {
				continue
			}
			for dest := range s.hopDestinations(from, ticket) {
				if s.blockedFor(p, dest) {
					continue
				}
				if !yield(SingleMove{Player: p, From: from, To: dest, Ticket: ticket}) {
					return
				}
			}
		}
		if !s.canDoubleMove(p) {
			return
		}
		for _, first := range HopTickets {
			if !player.Tickets.Has(first) {
				continue
			}
			for via := range s.hopDestinations(from, first) {
				for _, second := range HopTickets {
					needed := 1
					if second == first {
						needed = 2
					}
					if player.Tickets[second] < needed {
						continue
					}
					for dest := range s.hopDestinations(via, second) {
						move := DoubleMove{Player: p, From: from, FirstTicket: first, Via: via,
							SecondTicket: second, To: dest}
						if !yield(move) {
							return
						}
					}
				}
			}
		}
	}
}

// LegalMoves returns all the legal moves of player p, see MovesIter.
// An empty result is valid: it means the player can't move.
func (s *State) LegalMoves(p PlayerNum) []Move {
	return slices.Collect(s.MovesIter(p))
}

// HasLegalMoves returns whether player p has at least one legal move.
func (s *State) HasLegalMoves(p PlayerNum) bool {
	for range s.MovesIter(p) {
		return true
	}
	return false
}

// IsLegal returns whether the move is one of the moves returned by LegalMoves(move.Seat()).
// It checks the move directly instead of enumerating the legal moves.
func (s *State) IsLegal(move Move) bool {
	if move == nil || s.finished {
		return false
	}
	p := move.Seat()
	if p < 0 || int(p) >= len(s.players) {
		return false
	}
	switch m := move.(type) {
	case SingleMove:
		if m.Ticket >= DoubleTicket {
			return false
		}
	case DoubleMove:
		if m.FirstTicket >= DoubleTicket || m.SecondTicket >= DoubleTicket {
			return false
		}
	}
	player := &s.players[p]
	if move.Origin() != player.Location || !player.Tickets.Covers(move.TicketsUsed()) {
		return false
	}
	switch m := move.(type) {
	case SingleMove:
		return s.isHop(m.From, m.To, m.Ticket) && !s.blockedFor(p, m.To)
	case DoubleMove:
		return s.canDoubleMove(p) && s.isHop(m.From, m.Via, m.FirstTicket) &&
			s.isHop(m.Via, m.To, m.SecondTicket)
	}
	return false
}

// isHop returns whether the ticket can be used to go from a to b.
func (s *State) isHop(a, b board.Location, ticket Ticket) bool {
	if ticket >= DoubleTicket {
		return false
	}
	if ticket != Black {
		return s.graph.Connected(a, b, board.Transport(ticket))
	}
	for _, t := range board.Transports {
		if s.graph.Connected(a, b, t) {
			return true
		}
	}
	return false
}
