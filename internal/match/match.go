// Package match runs complete matches between controllers (AI or scripted players), and
// collects their results.
package match

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/players"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaxMoves is the default ceiling of moves (and skips) of a match. Correct play never reaches
// it: there are at most MaxRounds*(1+MaxDetectives) turns in a match.
const DefaultMaxMoves = MaxRounds * (1 + MaxDetectives) * 2

// Ending of a match: the EndReason of the final state, or EndedByCeiling.
type Ending uint8

const (
	EndedByCapture Ending = iota
	EndedBySurvival
	EndedByStalemate

	// EndedByCeiling means the match was stopped at Config.MaxMoves. This is an anomaly.
	EndedByCeiling
)

var endingNames = [...]string{"capture", "survival", "stalemate", "ceiling"}

func (e Ending) String() string {
	if int(e) >= len(endingNames) {
		return "invalid"
	}
	return endingNames[e]
}

// endingOf a finished state.
func endingOf(s *State) Ending {
	switch s.EndReason() {
	case Capture:
		return EndedByCapture
	case Survival:
		return EndedBySurvival
	case Stalemate:
		return EndedByStalemate
	}
	return EndedByCeiling
}

// Controllers assigns player configurations (see players.Registry.New) to the seats.
type Controllers struct {
	// MrX configuration.
	MrX string

	// Detectives configuration, used by all detective-class players (including Bobbies).
	Detectives string

	// Seats overrides the configuration of specific seats.
	Seats map[PlayerNum]string
}

// For returns the configuration of the seat of a player with the given role.
func (c Controllers) For(seat PlayerNum, role Role) string {
	if config, found := c.Seats[seat]; found {
		return config
	}
	if role == MrX {
		return c.MrX
	}
	return c.Detectives
}

// Config of a match.
type Config struct {
	// Graph of the board. If nil, board.Default() is used.
	Graph *board.Graph

	Settings Settings

	// Players of the match. If empty, Mr. X and 4 detectives.
	Players []PlayerConfig

	// Options applied when creating every match, e.g. WithStartPools or WithTickets.
	Options []Option

	Controllers Controllers

	// Registry used to create the controllers. If nil, players.DefaultRegistry() is used.
	Registry *players.Registry

	// MaxMoves is the ceiling of moves and skips. If <= 0, DefaultMaxMoves is used.
	MaxMoves int

	// ShuffleStarts draws the starting locations at random: match index i of a series uses
	// the seed (Seed, i).
	ShuffleStarts bool
	Seed          uint64

	// OnEvents, if set, is called after every move or skip, with the new state and its events.
	// In a series it is called concurrently from different matches.
	OnEvents func(matchIdx int, s *State, events []Event)
}

// DefaultPlayers is used when Config.Players is empty.
var DefaultPlayers = []PlayerConfig{{Role: MrX}, {Role: Detective}, {Role: Detective}, {Role: Detective}, {Role: Detective}}

// Result of one match.
type Result struct {
	ID uuid.UUID

	// Index of the match in a series.
	Index int

	// Winner is SideNone if the match ended by the ceiling.
	Winner Side
	Ending Ending

	// Rounds is the round number the match ended on.
	Rounds int
	Moves  int
	Skips  int
	Events int

	// Players of the match, in seat order, and the tickets each used.
	Players     []Player
	TicketsUsed []Tickets

	Duration time.Duration
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("match #%d (%s): winner=%s by %s in %d rounds (%d moves, %d skips) in %s",
		r.Index, r.ID, r.Winner, r.Ending, r.Rounds, r.Moves, r.Skips, r.Duration)
}

// withDefaults returns a copy of cfg with the defaults filled in.
func (cfg Config) withDefaults() (Config, error) {
	if cfg.Graph == nil {
		g, err := board.Default()
		if err != nil {
			return cfg, err
		}
		cfg.Graph = g
	}
	if cfg.Settings.RevealFrequency == 0 {
		cfg.Settings.RevealFrequency = DefaultRevealFrequency
	}
	if len(cfg.Players) == 0 {
		cfg.Players = DefaultPlayers
	}
	if cfg.Registry == nil {
		cfg.Registry = players.DefaultRegistry()
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = DefaultMaxMoves
	}
	return cfg, nil
}

// Run plays one match to the end, and returns its result.
//
// Players with no legal moves are skipped without asking their controller. If the match reaches
// cfg.MaxMoves it is stopped, and EndedByCeiling is reported.
func Run(ctx context.Context, cfg Config) (Result, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return Result{}, err
	}
	return run(ctx, cfg, 0)
}

func run(ctx context.Context, cfg Config, matchIdx int) (result Result, err error) {
	start := time.Now()
	options := cfg.Options
	if cfg.ShuffleStarts {
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(matchIdx)))
		options = append(append([]Option(nil), options...), WithShuffledStarts(rng))
	}
	s, err := New(cfg.Graph, cfg.Settings, cfg.Players, options...)
	if err != nil {
		return
	}
	result = Result{
		ID:          uuid.New(),
		Index:       matchIdx,
		Players:     s.Players(),
		TicketsUsed: make([]Tickets, s.NumPlayers()),
	}
	controllers := make([]players.Controller, s.NumPlayers())
	for seat, p := range result.Players {
		config := cfg.Controllers.For(PlayerNum(seat), p.Role)
		controllers[seat], err = cfg.Registry.New(config)
		if err != nil {
			return result, errors.WithMessagef(err, "controller for %s", p.Name)
		}
	}
	klog.V(1).Infof("Starting match #%d (%s)", matchIdx, result.ID)

	for !s.IsFinished() {
		if err = ctx.Err(); err != nil {
			return result, errors.WithMessagef(err, "match #%d interrupted", matchIdx)
		}
		if result.Moves+result.Skips >= cfg.MaxMoves {
			klog.Warningf("Match #%d (%s) reached the ceiling of %d moves in round %d: stopping it",
				matchIdx, result.ID, cfg.MaxMoves, s.Round())
			break
		}
		seat := s.Turn()
		var (
			next   *State
			events []Event
		)
		var move Move
		skip := !s.HasLegalMoves(seat)
		if skip {
			next, events, err = s.Skip()
		} else if move, err = controllers[seat].Play(ctx, s); err == nil {
			// Act rejects nil moves.
			next, events, err = s.Act(move)
		}
		if err != nil {
			return result, errors.WithMessagef(err, "match #%d, round %d", matchIdx, s.Round())
		}
		if skip {
			result.Skips++
		} else {
			result.Moves++
			result.TicketsUsed[seat] = result.TicketsUsed[seat].Add(move.TicketsUsed())
		}
		result.Events += len(events)
		if cfg.OnEvents != nil {
			cfg.OnEvents(matchIdx, next, events)
		}
		s = next
	}

	result.Rounds = s.Round()
	result.Ending = endingOf(s)
	result.Winner = s.Winner()
	result.Players = s.Players()
	result.Duration = time.Since(start)
	klog.V(1).Infof("Finished %s", result)
	return result, nil
}
