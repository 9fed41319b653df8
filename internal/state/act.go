package state

import (
	"github.com/pkg/errors"
)

// Act applies the move of the player on turn, and returns the new state along with the events
// it generated, in order. s itself is never changed.
//
// It fails with an error wrapping ErrGameOver if the match is over, or ErrIllegalMove if the
// move is not one of s.LegalMoves(s.Turn()).
func (s *State) Act(move Move) (*State, []Event, error) {
	if err := s.validate(move); err != nil {
		return nil, nil, err
	}
	p := move.Seat()
	newS := s.clone()
	player := &newS.players[p]
	player.Location = move.Destination()
	player.Tickets = player.Tickets.Sub(move.TicketsUsed())
	if p != PlayerMrX && !newS.settings.KeepDetectiveTickets {
		mrX := &newS.players[PlayerMrX]
		mrX.Tickets = mrX.Tickets.Add(move.TicketsUsed())
	}

	var events []Event
	revealed := false
	if p == PlayerMrX {
		revealed = newS.IsRevealRound(newS.round)
		player.Revealed = revealed
		if revealed {
			events = append(events, Event{Kind: EventReveal, Seat: p, Location: player.Location, Round: newS.round})
		}
	}
	events = append(events, Event{Kind: EventMove, Seat: p, Move: move, Round: newS.round})
	newS.history = append(newS.history, HistoryEntry{Round: newS.round, Move: move, Revealed: revealed})

	// Capture takes priority over turn advancement.
	mrXLocation := newS.players[PlayerMrX].Location
	if captor := newS.occupiedBy(mrXLocation, PlayerMrX); captor != PlayerInvalid {
		newS.finish(SideDetectives, Capture)
		events = append(events, Event{Kind: EventCapture, Seat: captor, Location: mrXLocation,
			Round: newS.round, Winner: SideDetectives, Reason: Capture})
		return newS, events, nil
	}
	events = newS.advanceTurn(events)
	return newS, events, nil
}

// Skip passes the turn of a detective-class player that has no legal moves, and returns the new
// state and the events generated. Turns advance exactly as they do in Act.
//
// It fails with an error wrapping ErrGameOver if the match is over, or ErrIllegalMove if the
// player on turn is Mr. X or has legal moves.
func (s *State) Skip() (*State, []Event, error) {
	if s.finished {
		return nil, nil, errors.Wrapf(ErrGameOver, "can't skip turn of %s", s.players[s.turn].Name)
	}
	if s.turn == PlayerMrX {
		return nil, nil, errors.Wrapf(ErrIllegalMove, "Mr. X can't skip a turn")
	}
	if s.HasLegalMoves(s.turn) {
		return nil, nil, errors.Wrapf(ErrIllegalMove, "%s has legal moves and can't skip its turn",
			s.players[s.turn].Name)
	}
	newS := s.clone()
	events := []Event{{Kind: EventSkip, Seat: s.turn, Round: s.round}}
	events = newS.advanceTurn(events)
	return newS, events, nil
}

// validate returns an error if the move can't be acted on s.
func (s *State) validate(move Move) error {
	if s.finished {
		return errors.Wrapf(ErrGameOver, "move %v after %s won", move, s.winner)
	}
	if move == nil {
		return errors.Wrapf(ErrIllegalMove, "no move given")
	}
	if move.Seat() != s.turn {
		return errors.Wrapf(ErrIllegalMove, "move %s made out of turn, it's #%d (%s) turn",
			move, s.turn, s.players[s.turn].Name)
	}
	player := &s.players[s.turn]
	if move.Origin() != player.Location {
		return errors.Wrapf(ErrIllegalMove, "move %s starts at %d, but %s is at %d",
			move, move.Origin(), player.Name, player.Location)
	}
	if !s.IsLegal(move) {
		if !player.Tickets.Covers(move.TicketsUsed()) {
			return errors.Wrapf(ErrIllegalMove, "move %s needs tickets %s, %s has %s",
				move, move.TicketsUsed(), player.Name, player.Tickets)
		}
		return errors.Wrapf(ErrIllegalMove, "move %s is not legal", move)
	}
	return nil
}

// advanceTurn moves the turn to the next seat, rolling the round when every player had its turn,
// and checks for the survival and stalemate ends. It is used after moving and after skipping.
func (s *State) advanceTurn(events []Event) []Event {
	next := s.turn + 1
	if int(next) < len(s.players) {
		s.turn = next
	} else {
		if s.round >= MaxRounds {
			s.finish(SideMrX, Survival)
			return append(events, Event{Kind: EventGameOver, Seat: PlayerMrX, Round: s.round,
				Winner: SideMrX, Reason: Survival})
		}
		s.round++
		s.turn = PlayerMrX
		events = append(events, Event{Kind: EventRoundAdvanced, Round: s.round})
	}
	if s.turn == PlayerMrX && !s.HasLegalMoves(PlayerMrX) {
		s.finish(SideDetectives, Stalemate)
		events = append(events, Event{Kind: EventGameOver, Seat: PlayerMrX, Round: s.round,
			Winner: SideDetectives, Reason: Stalemate})
	}
	return events
}

func (s *State) finish(winner Side, reason EndReason) {
	s.finished = true
	s.winner = winner
	s.reason = reason
}

// Replay applies the moves in sequence starting from initial, and returns the final state and all
// the events generated. A nil move is a Skip.
func Replay(initial *State, moves []Move) (*State, []Event, error) {
	s := initial
	var events []Event
	for ii, move := range moves {
		var newEvents []Event
		var err error
		if move == nil {
			s, newEvents, err = s.Skip()
		} else {
			s, newEvents, err = s.Act(move)
		}
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "replaying move #%d", ii)
		}
		events = append(events, newEvents...)
	}
	return s, events, nil
}
