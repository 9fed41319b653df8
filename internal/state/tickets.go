package state

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/pkg/errors"
)

// Ticket kinds. The first three match the board.Transport values.
type Ticket uint8

const (
	Taxi Ticket = iota
	Bus
	Underground

	// Black can be used for any transport, and it doesn't tell observers which one was used.
	Black

	// DoubleTicket allows Mr. X to chain two hops in one turn. It's consumed along with the
	// tickets of both hops.
	DoubleTicket

	// NumTickets is the number of ticket kinds.
	NumTickets
)

// HopTickets are the tickets that can be used for a single hop, in the order moves are generated.
var HopTickets = [...]Ticket{Taxi, Bus, Underground, Black}

var ticketNames = [NumTickets]string{"taxi", "bus", "underground", "black", "double"}

// ticketShortNames are one letter each: black and bus share their first letter.
var ticketShortNames = [NumTickets]string{"t", "b", "u", "k", "d"}

func (t Ticket) String() string {
	if t >= NumTickets {
		return "unknown"
	}
	return ticketNames[t]
}

// ParseTicket converts a ticket name to a Ticket. It accepts the names returned by
// Ticket.String and the short names returned by Ticket.ShortName.
func ParseTicket(name string) (Ticket, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for ii := range NumTickets {
		if name == ticketNames[ii] || name == ticketShortNames[ii] {
			return ii, nil
		}
	}
	return NumTickets, errors.Errorf("unknown ticket %q", name)
}

// ShortName returns the one letter name of the ticket: "t", "b", "u", "k" (black) or "d".
func (t Ticket) ShortName() string {
	if t >= NumTickets {
		return "?"
	}
	return ticketShortNames[t]
}

// TicketFor returns the ticket matching the transport.
func TicketFor(t board.Transport) Ticket {
	return Ticket(t)
}

// Covers returns whether the ticket can be used to travel by the given transport.
func (t Ticket) Covers(transport board.Transport) bool {
	return t == Black || t == TicketFor(transport)
}

// Tickets is the inventory of tickets of a player, indexed by Ticket.
// It is a value: assigning it copies it.
type Tickets [NumTickets]int

// DetectiveTickets are the initial tickets of detective-class players.
var DetectiveTickets = Tickets{Taxi: 10, Bus: 8, Underground: 4}

// MrXTickets are the initial tickets of Mr. X.
var MrXTickets = Tickets{Taxi: 4, Bus: 3, Underground: 3, Black: 5, DoubleTicket: 2}

// Has returns whether there is at least one ticket of the given kind.
func (t Tickets) Has(ticket Ticket) bool {
	return t[ticket] > 0
}

// Covers returns whether the inventory has at least the tickets in cost.
func (t Tickets) Covers(cost Tickets) bool {
	for ii := range t {
		if t[ii] < cost[ii] {
			return false
		}
	}
	return true
}

// Sub returns the inventory after paying cost. Counts are never negative.
func (t Tickets) Sub(cost Tickets) Tickets {
	for ii := range t {
		t[ii] = max(t[ii]-cost[ii], 0)
	}
	return t
}

// Add returns the sum of both inventories.
func (t Tickets) Add(other Tickets) Tickets {
	for ii := range t {
		t[ii] += other[ii]
	}
	return t
}

// AddTransport returns the inventory with delta added to each of the transport tickets
// (taxi, bus and underground), floored at 0.
func (t Tickets) AddTransport(delta int) Tickets {
	for _, transport := range board.Transports {
		ticket := TicketFor(transport)
		t[ticket] = max(t[ticket]+delta, 0)
	}
	return t
}

// Total number of tickets.
func (t Tickets) Total() (total int) {
	for _, count := range t {
		total += count
	}
	return
}

// String lists the tickets held, for instance "taxi=4 bus=3".
func (t Tickets) String() string {
	parts := make([]string, 0, NumTickets)
	for ii, count := range t {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", Ticket(ii), count))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
