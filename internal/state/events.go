package state

import (
	"fmt"

	"github.com/janpfeifer/yardGo/internal/board"
)

// EventKind enumerates the semantic events emitted by Act and Skip.
type EventKind uint8

const (
	// EventMove is emitted for every applied move.
	EventMove EventKind = iota

	// EventReveal is emitted when Mr. X moves on a reveal round. Location is where he was seen.
	EventReveal

	// EventCapture is emitted when a detective-class player lands on Mr. X.
	EventCapture

	// EventRoundAdvanced is emitted when every player had its turn: Round is the new round.
	EventRoundAdvanced

	// EventSkip is emitted when a player without legal moves passes its turn.
	EventSkip

	// EventGameOver is emitted when the match ends by survival or stalemate. Captures emit
	// EventCapture instead.
	EventGameOver
)

var eventKindNames = [...]string{"Move", "Reveal", "Capture", "RoundAdvanced", "Skip", "GameOver"}

func (k EventKind) String() string {
	if int(k) >= len(eventKindNames) {
		return "Invalid"
	}
	return eventKindNames[k]
}

// Event describes something that happened in a transition. Only the fields relevant to Kind are
// set.
type Event struct {
	Kind     EventKind
	Seat     PlayerNum
	Move     Move
	Location board.Location
	Round    int
	Winner   Side
	Reason   EndReason
}

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e.Kind {
	case EventMove:
		return fmt.Sprintf("round %d: move %s", e.Round, e.Move)
	case EventReveal:
		return fmt.Sprintf("round %d: Mr. X revealed at %d", e.Round, e.Location)
	case EventCapture:
		return fmt.Sprintf("round %d: #%d captured Mr. X at %d", e.Round, e.Seat, e.Location)
	case EventRoundAdvanced:
		return fmt.Sprintf("round %d begins", e.Round)
	case EventSkip:
		return fmt.Sprintf("round %d: #%d has no moves, skipped", e.Round, e.Seat)
	case EventGameOver:
		return fmt.Sprintf("round %d: game over, %s win by %s", e.Round, e.Winner, e.Reason)
	}
	return fmt.Sprintf("event %s", e.Kind)
}
