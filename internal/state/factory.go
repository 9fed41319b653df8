package state

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/pkg/errors"
)

var (
	// MrXStartPool holds the default start locations of Mr. X.
	MrXStartPool = []board.Location{35, 45, 51, 71, 78, 104, 106, 127, 132, 146, 166, 170, 172}

	// DetectiveStartPool holds the default start locations of detective-class players.
	DetectiveStartPool = []board.Location{13, 26, 29, 34, 50, 53, 91, 94, 103, 112, 117, 123, 138,
		141, 155, 174, 197, 198}
)

// Option for New.
type Option func(f *factory)

type factory struct {
	mrXPool, detectivePool []board.Location
	rng                    *rand.Rand
	tickets                map[PlayerNum]Tickets
}

// WithStartPools sets the pools of start locations, assigned in player order.
// The pools must be disjoint.
func WithStartPools(mrX, detectives []board.Location) Option {
	return func(f *factory) {
		f.mrXPool = mrX
		f.detectivePool = detectives
	}
}

// WithShuffledStarts samples the start locations from the pools without replacement, using rng,
// instead of taking them in order.
func WithShuffledStarts(rng *rand.Rand) Option {
	return func(f *factory) {
		f.rng = rng
	}
}

// WithTickets overrides the initial tickets of the player at the given seat (Mr. X is always
// on seat PlayerMrX). Settings handicaps are not applied to overridden tickets.
func WithTickets(seat PlayerNum, tickets Tickets) Option {
	return func(f *factory) {
		if f.tickets == nil {
			f.tickets = make(map[PlayerNum]Tickets)
		}
		f.tickets[seat] = tickets
	}
}

// New creates the initial state of a match.
//
// It fails with an error wrapping ErrConfiguration if there isn't exactly one MrX, if the
// number of detective-class players is not between 1 and MaxDetectives, or if the settings or
// start pools are invalid. Mr. X is moved to seat PlayerMrX, and detective-class players keep
// their relative order.
func New(graph *board.Graph, settings Settings, configs []PlayerConfig, options ...Option) (*State, error) {
	f := &factory{mrXPool: MrXStartPool, detectivePool: DetectiveStartPool}
	for _, option := range options {
		option(f)
	}
	if graph == nil {
		return nil, errors.Wrapf(ErrConfiguration, "no board graph given")
	}
	if settings.RevealFrequency <= 0 {
		return nil, errors.Wrapf(ErrConfiguration, "reveal frequency must be positive, got %d",
			settings.RevealFrequency)
	}
	if settings.DetectiveTicketBonus < 0 || settings.MrXTicketPenalty < 0 {
		return nil, errors.Wrapf(ErrConfiguration, "ticket bonus (%d) and penalty (%d) can't be negative",
			settings.DetectiveTicketBonus, settings.MrXTicketPenalty)
	}

	players, err := seatPlayers(settings, configs)
	if err != nil {
		return nil, err
	}
	if err := f.placePlayers(graph, players); err != nil {
		return nil, err
	}
	for p := range players {
		player := &players[p]
		if tickets, found := f.tickets[PlayerNum(p)]; found {
			player.Tickets = tickets
		} else if player.Role == MrX {
			player.Tickets = MrXTickets.AddTransport(-settings.MrXTicketPenalty)
		} else {
			player.Tickets = DetectiveTickets.AddTransport(settings.DetectiveTicketBonus)
		}
		player.Revealed = player.Role != MrX
	}

	s := &State{
		graph:    graph,
		settings: settings,
		schedule: RevealSchedule(settings.RevealFrequency),
		round:    1,
		turn:     PlayerMrX,
		players:  players,
	}
	if !s.HasLegalMoves(PlayerMrX) {
		s.finish(SideDetectives, Stalemate)
	}
	return s, nil
}

// seatPlayers validates the configuration, auto-fills Bobbies and puts Mr. X on seat 0.
func seatPlayers(settings Settings, configs []PlayerConfig) ([]Player, error) {
	var mrX []Player
	var detectives []Player
	for ii, config := range configs {
		switch {
		case config.Role == MrX:
			mrX = append(mrX, Player{Role: MrX, Name: config.Name})
		case config.Role.IsDetective():
			detectives = append(detectives, Player{Role: config.Role, Name: config.Name})
		default:
			return nil, errors.Wrapf(ErrConfiguration, "player #%d (%q) has invalid role %d",
				ii, config.Name, config.Role)
		}
	}
	if len(mrX) != 1 {
		return nil, errors.Wrapf(ErrConfiguration, "exactly one MrX required, got %d", len(mrX))
	}
	if len(detectives) < 1 || len(detectives) > MaxDetectives {
		return nil, errors.Wrapf(ErrConfiguration, "between 1 and %d detectives required, got %d",
			MaxDetectives, len(detectives))
	}
	if settings.AutoFillBobbies {
		for bobby := 1; len(detectives) < AutoFillTarget; bobby++ {
			detectives = append(detectives, Player{Role: Bobby, Name: fmt.Sprintf("Bobby %d", bobby)})
		}
	}
	if mrX[0].Name == "" {
		mrX[0].Name = "Mr. X"
	}
	for ii := range detectives {
		if detectives[ii].Name == "" {
			detectives[ii].Name = fmt.Sprintf("%s %d", detectives[ii].Role, ii+1)
		}
	}
	return append(mrX, detectives...), nil
}

// placePlayers assigns start locations, in seat order.
func (f *factory) placePlayers(graph *board.Graph, players []Player) error {
	for _, loc := range f.mrXPool {
		if slices.Contains(f.detectivePool, loc) {
			return errors.Wrapf(ErrConfiguration, "location %d is in both start pools", loc)
		}
	}
	mrXLocations, err := f.draw(graph, f.mrXPool, 1)
	if err != nil {
		return errors.WithMessage(err, "Mr. X start pool")
	}
	detectiveLocations, err := f.draw(graph, f.detectivePool, len(players)-1)
	if err != nil {
		return errors.WithMessage(err, "detectives start pool")
	}
	locations := append(mrXLocations, detectiveLocations...)
	for p := range players {
		players[p].Location = locations[p]
	}
	return nil
}

// draw n distinct locations from the pool.
func (f *factory) draw(graph *board.Graph, pool []board.Location, n int) ([]board.Location, error) {
	if len(pool) < n {
		return nil, errors.Wrapf(ErrConfiguration, "%d start locations needed, pool has only %d", n, len(pool))
	}
	var drawn []board.Location
	if f.rng == nil {
		drawn = slices.Clone(pool[:n])
	} else {
		for _, idx := range f.rng.Perm(len(pool))[:n] {
			drawn = append(drawn, pool[idx])
		}
	}
	for ii, loc := range drawn {
		if !graph.Has(loc) {
			return nil, errors.Wrapf(ErrConfiguration, "start location %d is not on the board", loc)
		}
		if slices.Contains(drawn[:ii], loc) {
			return nil, errors.Wrapf(ErrConfiguration, "start location %d drawn twice", loc)
		}
	}
	return drawn, nil
}
