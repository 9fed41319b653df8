package players

import (
	"math/rand/v2"

	"github.com/janpfeifer/yardGo/internal/ai"
	"github.com/janpfeifer/yardGo/internal/parameters"
	"github.com/janpfeifer/yardGo/internal/searchers"
	"github.com/janpfeifer/yardGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/yardGo/internal/searchers/greedy"
	"github.com/pkg/errors"
)

// DefaultDifficulty is used when no configuration is given.
const DefaultDifficulty = "easy"

// DefaultRegistry returns a Registry with the players:
//
//   - greedy: the greedy searcher (see package greedy). Parameters:
//     "randomness" (float, default 0) softmax temperature to select among the moves,
//     "random_moves" (int, default 0) number of moves of the match after which no more randomness is used,
//     "seed" (int) for the randomness.
//   - ab: alpha-beta pruning (see package alphabeta) with the ai.Heuristic scorer. Parameters:
//     "max_depth", "max_time", "randomness" for the search, "scorer" ("heuristic", the default, or "linear")
//     and "danger", "center", "tickets" for the heuristic.
//   - first: the first legal move, always.
//   - random: a uniformly random legal move. Parameter "seed" (int) makes it reproducible.
//
// And the difficulties: easy ("greedy"), medium ("ab,max_depth=2") and hard ("ab,max_depth=4,max_time=1s").
func DefaultRegistry() *Registry {
	return NewRegistry().
		Register("greedy", newGreedy).
		Register("ab", newAlphaBeta).
		Register("first", func(parameters.Params) (Controller, error) { return First{}, nil }).
		Register("random", newRandom).
		SetDifficulty("easy", "greedy").
		SetDifficulty("medium", "ab,max_depth=2").
		SetDifficulty("hard", "ab,max_depth=4,max_time=1s")
}

// popRNG returns a random number generator seeded with the "seed" parameter, or nil if not given.
func popRNG(params parameters.Params) (*rand.Rand, error) {
	if _, found := params["seed"]; !found {
		return nil, nil
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))), nil
}

func newGreedy(params parameters.Params) (Controller, error) {
	randomness, err := parameters.PopParamOr(params, "randomness", 0.0)
	if err != nil {
		return nil, err
	}
	randomMoves, err := parameters.PopParamOr(params, "random_moves", 0)
	if err != nil {
		return nil, err
	}
	rng, err := popRNG(params)
	if err != nil {
		return nil, err
	}
	searcher := searchers.NewRandomizedSearcher(greedy.NewSearcher(), randomness, randomMoves, rng)
	return NewSearcherPlayer("greedy", searcher), nil
}

func newAlphaBeta(params parameters.Params) (Controller, error) {
	scorerName, err := parameters.PopParamOr(params, "scorer", "heuristic")
	if err != nil {
		return nil, err
	}
	var scorer ai.Scorer
	switch scorerName {
	case "heuristic":
		scorer, err = ai.NewHeuristic(params)
		if err != nil {
			return nil, err
		}
	case "linear":
		scorer = ai.DefaultLinear
	default:
		return nil, errors.Errorf("unknown scorer %q, valid values are \"heuristic\" or \"linear\"", scorerName)
	}
	searcher, err := alphabeta.NewFromParams(scorer, params)
	if err != nil {
		return nil, err
	}
	return NewSearcherPlayer("ab", searcher), nil
}

func newRandom(params parameters.Params) (Controller, error) {
	rng, err := popRNG(params)
	if err != nil {
		return nil, err
	}
	return NewRandom(rng), nil
}
