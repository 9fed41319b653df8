// Package state holds the rules of the game: the immutable State of a match, the legal moves
// for each player and the transition function.
//
// A State is never modified after it is created: State.Act and State.Skip return new states,
// and every getter returns copies. So states can be freely shared among goroutines.
package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/pkg/errors"
)

const (
	// MaxRounds in a match: Mr. X wins if he is still free by the end of it.
	MaxRounds = 24

	// MaxDetectives is the maximum number of detective-class players (detectives and Bobbies).
	MaxDetectives = 5

	// AutoFillTarget is the number of detective-class players Bobbies are auto-filled to.
	AutoFillTarget = 4

	// DefaultRevealFrequency of Mr. X reveals, in rounds.
	DefaultRevealFrequency = 5
)

var (
	// ErrConfiguration is returned (wrapped) by New when the match can't be started.
	ErrConfiguration = errors.New("invalid match configuration")

	// ErrIllegalMove is returned (wrapped) when a move is rejected: the player should choose again.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned (wrapped) when acting on a finished match.
	ErrGameOver = errors.New("game is over")
)

// Role of a player.
type Role uint8

const (
	MrX Role = iota
	Detective

	// Bobby is a detective filled in and controlled by the AI.
	Bobby

	// RoleInvalid represents an unknown role.
	RoleInvalid
)

var roleNames = [RoleInvalid + 1]string{"MrX", "Detective", "Bobby", "Invalid"}

// String returns the role name.
func (r Role) String() string {
	if r > RoleInvalid {
		r = RoleInvalid
	}
	return roleNames[r]
}

// IsDetective returns whether the role is of the detective class: Detective or Bobby.
func (r Role) IsDetective() bool {
	return r == Detective || r == Bobby
}

// Side of the match: the winner is one of them.
type Side uint8

const (
	SideNone Side = iota
	SideMrX
	SideDetectives
)

var sideNames = [...]string{"None", "MrX", "Detectives"}

func (s Side) String() string {
	if int(s) >= len(sideNames) {
		return "Invalid"
	}
	return sideNames[s]
}

// EndReason describes how a match ended.
type EndReason uint8

const (
	NotEnded EndReason = iota

	// Capture means a detective-class player reached Mr. X's location.
	Capture

	// Survival means Mr. X was still free at the end of the last round.
	Survival

	// Stalemate means it was Mr. X's turn, and he had no legal move.
	Stalemate
)

var endReasonNames = [...]string{"NotEnded", "Capture", "Survival", "Stalemate"}

func (r EndReason) String() string {
	if int(r) >= len(endReasonNames) {
		return "Invalid"
	}
	return endReasonNames[r]
}

// PlayerNum is the seat of the player in the match: it's also its position in the turn order.
// Mr. X always sits on PlayerMrX.
type PlayerNum int

const (
	PlayerMrX PlayerNum = 0

	// PlayerInvalid represents an invalid PlayerNum.
	PlayerInvalid PlayerNum = -1
)

// Player holds the state of one player in the match.
type Player struct {
	Role     Role
	Name     string
	Location board.Location
	Tickets  Tickets

	// Revealed is always true for detective-class players. For Mr. X it says
	// whether his last location was exposed.
	Revealed bool
}

// String implements fmt.Stringer.
func (p Player) String() string {
	return fmt.Sprintf("%s(%s)@%d [%s]", p.Name, p.Role, p.Location, p.Tickets)
}

// PlayerConfig is used to create a match.
type PlayerConfig struct {
	Role Role
	Name string
}

// Settings for a match. They are immutable for the lifetime of the match.
type Settings struct {
	// RevealFrequency: Mr. X is revealed on every round multiple of it, and always on the last round.
	RevealFrequency int

	// DetectiveTicketBonus is added to each of the transport tickets of every detective-class player.
	DetectiveTicketBonus int

	// MrXTicketPenalty is subtracted from each of Mr. X's transport tickets (floored at 0).
	MrXTicketPenalty int

	// AutoFillBobbies adds Bobbies until there are AutoFillTarget detective-class players.
	AutoFillBobbies bool

	// KeepDetectiveTickets discards the tickets spent by detective-class players. By default
	// they are handed to Mr. X, as in the board game.
	KeepDetectiveTickets bool
}

// DefaultSettings returns the settings of a standard match.
func DefaultSettings() Settings {
	return Settings{RevealFrequency: DefaultRevealFrequency}
}

// State of a match. Create it with New, and move forward with Act and Skip.
type State struct {
	graph    *board.Graph
	settings Settings

	// schedule is created once by New and never changed, so it's shared among states.
	schedule []int

	round    int
	turn     PlayerNum
	players  []Player
	history  []HistoryEntry
	finished bool
	winner   Side
	reason   EndReason
}

// HistoryEntry records one applied move.
type HistoryEntry struct {
	Round int
	Move  Move

	// Revealed is whether the move was made by Mr. X on a reveal round.
	Revealed bool
}

// RevealSchedule returns the rounds on which Mr. X is revealed, for the given frequency:
// every multiple of the frequency up to MaxRounds, plus MaxRounds.
// It returns nil for frequency <= 0.
func RevealSchedule(frequency int) []int {
	if frequency <= 0 {
		return nil
	}
	var rounds []int
	for round := frequency; round <= MaxRounds; round += frequency {
		rounds = append(rounds, round)
	}
	if len(rounds) == 0 || rounds[len(rounds)-1] != MaxRounds {
		rounds = append(rounds, MaxRounds)
	}
	return rounds
}

// clone makes a copy of the state for a next move: players and history are copied, so
// the new state can be changed without affecting s.
func (s *State) clone() *State {
	newS := &State{}
	*newS = *s
	newS.players = slices.Clone(s.players)
	newS.history = slices.Clone(s.history)
	return newS
}

// Graph returns the board graph used by the match.
func (s *State) Graph() *board.Graph { return s.graph }

// Settings used to create the match.
func (s *State) Settings() Settings { return s.settings }

// Round returns the current round, from 1 to MaxRounds.
func (s *State) Round() int { return s.round }

// Turn returns the player to move.
func (s *State) Turn() PlayerNum { return s.turn }

// NumPlayers returns the number of players, Mr. X included.
func (s *State) NumPlayers() int { return len(s.players) }

// Player returns a copy of the player at the given seat.
func (s *State) Player(p PlayerNum) Player {
	return s.players[p]
}

// Players returns a copy of all players, in turn order.
func (s *State) Players() []Player {
	return slices.Clone(s.players)
}

// MrX returns a copy of Mr. X's player state. Its location is always the real one:
// use View for what can be shown to observers.
func (s *State) MrX() Player {
	return s.players[PlayerMrX]
}

// Detectives returns a copy of the detective-class players, in turn order.
func (s *State) Detectives() []Player {
	return slices.Clone(s.players[1:])
}

// DetectiveNums returns the seats of the detective-class players.
func (s *State) DetectiveNums() []PlayerNum {
	nums := make([]PlayerNum, 0, len(s.players)-1)
	for p := 1; p < len(s.players); p++ {
		nums = append(nums, PlayerNum(p))
	}
	return nums
}

// RevealSchedule returns a copy of the rounds on which Mr. X is revealed.
func (s *State) RevealSchedule() []int {
	return slices.Clone(s.schedule)
}

// IsRevealRound returns whether Mr. X is revealed when moving on the given round.
func (s *State) IsRevealRound(round int) bool {
	_, found := slices.BinarySearch(s.schedule, round)
	return found
}

// History returns a copy of the moves applied so far.
func (s *State) History() []HistoryEntry {
	return slices.Clone(s.history)
}

// NumMoves returns the number of moves applied so far.
func (s *State) NumMoves() int { return len(s.history) }

// IsFinished returns whether the match is over.
func (s *State) IsFinished() bool { return s.finished }

// Winner returns the winning side, or SideNone if the match is not finished.
func (s *State) Winner() Side { return s.winner }

// EndReason returns how the match ended, or NotEnded.
func (s *State) EndReason() EndReason { return s.reason }

// LastKnownMrX returns where Mr. X was last seen: his location if he is currently revealed,
// otherwise the destination of his last move made on a reveal round.
// It returns false if Mr. X was never revealed.
func (s *State) LastKnownMrX() (loc board.Location, known bool) {
	mrX := s.players[PlayerMrX]
	if mrX.Revealed {
		return mrX.Location, true
	}
	for ii := len(s.history) - 1; ii >= 0; ii-- {
		entry := s.history[ii]
		if entry.Revealed && entry.Move.Seat() == PlayerMrX {
			return entry.Move.Destination(), true
		}
	}
	return board.NoLocation, false
}

// AssumeMrXAt returns a copy of the state with Mr. X moved to loc.
//
// It is meant for AI players of the detectives, to search over what they believe the
// state to be, as opposed to Mr. X's real location.
func (s *State) AssumeMrXAt(loc board.Location) *State {
	newS := s.clone()
	newS.players[PlayerMrX].Location = loc
	return newS
}

// occupiedBy returns the player at loc other than exclude, or PlayerInvalid.
func (s *State) occupiedBy(loc board.Location, exclude PlayerNum) PlayerNum {
	for p := range s.players {
		if PlayerNum(p) != exclude && s.players[p].Location == loc {
			return PlayerNum(p)
		}
	}
	return PlayerInvalid
}

// String returns a one-line summary of the state, including Mr. X real location.
func (s *State) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("round %d/%d, turn %s", s.round, MaxRounds, s.players[s.turn].Name))
	for _, player := range s.players {
		parts = append(parts, player.String())
	}
	if s.finished {
		parts = append(parts, fmt.Sprintf("winner %s by %s", s.winner, s.reason))
	}
	return strings.Join(parts, "; ")
}
