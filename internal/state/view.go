package state

import (
	"slices"

	"github.com/janpfeifer/yardGo/internal/board"
)

// View is what observers of a match (renderers, remote players, detectives' AI) can see: a copy
// of the state where Mr. X's location is hidden while he is concealed.
//
// Mr. X's tickets remain visible, and so do the tickets of his past moves. Once the match is
// over everything is shown.
type View struct {
	Round          int
	Turn           PlayerNum
	RevealSchedule []int
	Players        []Player
	History        []HistoryEntry

	// LastKnownMrX is the last location Mr. X was seen at, or board.NoLocation.
	LastKnownMrX board.Location

	Finished bool
	Winner   Side
	Reason   EndReason
}

// View returns what can be shown to observers of the match. See View.
func (s *State) View() View {
	v := View{
		Round:          s.round,
		Turn:           s.turn,
		RevealSchedule: slices.Clone(s.schedule),
		Players:        slices.Clone(s.players),
		History:        slices.Clone(s.history),
		Finished:       s.finished,
		Winner:         s.winner,
		Reason:         s.reason,
	}
	if loc, known := s.LastKnownMrX(); known {
		v.LastKnownMrX = loc
	}
	if s.finished {
		return v
	}
	if !v.Players[PlayerMrX].Revealed {
		v.Players[PlayerMrX].Location = board.NoLocation
	}
	for ii, entry := range v.History {
		if entry.Move.Seat() == PlayerMrX {
			v.History[ii].Move = maskMove(entry.Move, entry.Revealed)
		}
	}
	return v
}

// maskMove hides the locations of a move of Mr. X, keeping the tickets used. If revealed, the
// destination is kept.
func maskMove(move Move, revealed bool) Move {
	switch m := move.(type) {
	case SingleMove:
		m.From = board.NoLocation
		if !revealed {
			m.To = board.NoLocation
		}
		return m
	case DoubleMove:
		m.From, m.Via = board.NoLocation, board.NoLocation
		if !revealed {
			m.To = board.NoLocation
		}
		return m
	}
	return move
}

// MrX returns Mr. X as observers see him.
func (v View) MrX() Player {
	return v.Players[PlayerMrX]
}
