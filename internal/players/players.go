// Package players creates the controllers of a match from configuration strings, and provides
// the AI entry point ChooseMove.
//
// A configuration string is a keyword naming the kind of player (e.g. "greedy", "ab", "random"),
// followed by comma-separated parameters: e.g. "ab,max_depth=4,max_time=1s". Difficulty names
// ("easy", "medium", "hard") are aliases to configuration strings.
//
// Builders are held by an explicit Registry, so matches with different sets of players can
// run side by side. DefaultRegistry returns one with all the players of this module.
package players

import (
	"context"
	"slices"
	"strings"

	"github.com/janpfeifer/yardGo/internal/generics"
	"github.com/janpfeifer/yardGo/internal/parameters"
	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
)

// Controller is anything that is able to choose moves for a seat: an AI, a script or a human.
type Controller interface {
	// Play returns the move chosen for the player on turn in s. It is only called when the
	// player has at least one legal move.
	Play(ctx context.Context, s *State) (Move, error)
}

// Builder creates a Controller from its parameters. It must pop the parameters it uses: the ones
// left are reported as unknown.
type Builder func(params parameters.Params) (Controller, error)

// Registry maps keywords to player builders, and difficulty names to configuration strings.
// It is not safe to register concurrently with New or ChooseMove.
type Registry struct {
	builders     map[string]Builder
	difficulties map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		builders:     make(map[string]Builder),
		difficulties: make(map[string]string),
	}
}

// Register a player builder under the keyword. It replaces any previous registration.
func (r *Registry) Register(keyword string, builder Builder) *Registry {
	r.builders[keyword] = builder
	return r
}

// SetDifficulty makes the difficulty name an alias to the configuration string.
func (r *Registry) SetDifficulty(name, config string) *Registry {
	r.difficulties[name] = config
	return r
}

// Keywords returns the registered keywords, sorted.
func (r *Registry) Keywords() []string {
	return slices.Collect(generics.SortedKeys(r.builders))
}

// Difficulties returns the difficulty names, sorted.
func (r *Registry) Difficulties() []string {
	return slices.Collect(generics.SortedKeys(r.difficulties))
}

// Resolve returns the configuration string for config: if it is a difficulty name, the configuration
// string it is an alias to, otherwise config itself. An empty config is DefaultDifficulty.
func (r *Registry) Resolve(config string) string {
	config = strings.TrimSpace(config)
	if config == "" {
		config = DefaultDifficulty
	}
	if aliased, found := r.difficulties[config]; found {
		return aliased
	}
	return config
}

// New creates a new player given the configuration string, or a difficulty name.
//
// Exactly one registered keyword must be present in the configuration, and all other parameters
// must be used by its builder.
func (r *Registry) New(config string) (Controller, error) {
	resolved := r.Resolve(config)
	params := parameters.NewFromConfigString(resolved)
	var keyword string
	for key, value := range generics.SortedKeysAndValues(params) {
		if _, found := r.builders[key]; !found || value != "" {
			continue
		}
		if keyword != "" {
			return nil, errors.Errorf("multiple players (%q and %q) defined in %q", keyword, key, resolved)
		}
		keyword = key
	}
	if keyword == "" {
		return nil, errors.Errorf("no known player defined in %q, registered players are %q and difficulties are %q",
			resolved, r.Keywords(), r.Difficulties())
	}
	delete(params, keyword)
	player, err := r.builders[keyword](params)
	if err == nil {
		err = parameters.CheckAllUsed(params)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create player %q", config)
	}
	return player, nil
}

// ChooseMove is the AI entry point: it returns the move chosen for the seat, using the player
// configured by difficulty (a difficulty name or a configuration string).
//
// The legal moves are derived from s: if there are none it fails with an error wrapping
// searchers.ErrNoLegalMoves; if there is exactly one it is returned without building a player.
// seat must be on turn (or the error wraps ErrIllegalMove), and s must not be finished
// (ErrGameOver).
func (r *Registry) ChooseMove(ctx context.Context, s *State, seat PlayerNum, difficulty string) (Move, error) {
	if s.IsFinished() {
		return nil, errors.Wrapf(ErrGameOver, "can't choose a move, match is over (%s won)", s.Winner())
	}
	if seat != s.Turn() {
		return nil, errors.Wrapf(ErrIllegalMove, "can't choose a move for seat #%d, it's seat #%d's turn", seat, s.Turn())
	}
	moves, err := searchers.LegalMovesOrErr(s)
	if err != nil {
		return nil, err
	}
	if len(moves) == 1 {
		return moves[0], nil
	}
	player, err := r.New(difficulty)
	if err != nil {
		return nil, err
	}
	move, err := player.Play(ctx, s)
	if err != nil {
		return nil, err
	}
	if !s.IsLegal(move) {
		return nil, errors.Wrapf(ErrIllegalMove, "player %q chose %s", difficulty, move)
	}
	return move, nil
}
