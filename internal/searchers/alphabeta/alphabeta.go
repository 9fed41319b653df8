// Package alphabeta implements a depth limited alpha-beta pruning searchers.Searcher.
//
// Each ply is the move of one player. Mr. X maximizes the score and the detectives minimize it.
// Detectives don't peek at Mr. X's location while he is concealed: they search over a belief
// state where he sits at ai.LastKnownMrX.
package alphabeta

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/janpfeifer/yardGo/internal/ai"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/generics"
	"github.com/janpfeifer/yardGo/internal/parameters"
	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface.
//
// It holds no state across searches, so it can be used concurrently.
type Searcher struct {
	maxDepth   int
	maxTime    time.Duration
	randomness float32
	scorer     ai.BatchScorer
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search: acting a move on a state.
	Nodes int

	// Evals is the number of states passed to the scorer. End-game states are not scored and don't
	// count here.
	Evals int

	Prunes int

	// TimeCutoffs is the number of nodes evaluated as leaves because the max time was reached.
	TimeCutoffs int
}

// NewSearcher returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are many other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the scorer used for the search.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func NewSearcher(scorer ai.Scorer) *Searcher {
	return &Searcher{
		scorer:   ai.AsBatch(scorer),
		maxDepth: DefaultMaxDepth,
	}
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 2

// NewFromParams creates a Searcher configured by the parameters "max_depth" (int), "max_time"
// (time.Duration) and "randomness" (float). The parameters used are popped from params.
func NewFromParams(scorer ai.Scorer, params parameters.Params) (*Searcher, error) {
	ab := NewSearcher(scorer)
	maxDepth, err := parameters.PopParamOr(params, "max_depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	maxTime, err := parameters.PopParamOr(params, "max_time", time.Duration(0))
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	if err != nil {
		return nil, err
	}
	return ab.WithMaxDepth(maxDepth).WithMaxTime(maxTime).WithRandomness(randomness), nil
}

// WithMaxDepth sets the max depth of search: the unit here are plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// Values < 1 are taken as 1. The default is DefaultMaxDepth.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = max(maxDepth, 1)
	return ab
}

// WithMaxTime sets a max duration of thinking per search: once it's reached, the remaining
// nodes are evaluated as leaves. The search still doesn't go deeper than max depth.
//
// The default is 0, meaning no time-limit.
func (ab *Searcher) WithMaxTime(maxTime time.Duration) *Searcher {
	ab.maxTime = max(maxTime, 0)
	return ab
}

// WithRandomness adds a gaussian noise scaled to randomness to the scores of the leaf nodes.
// Scores vary from -1 to 1 (+/- ai.WinGameScore), so a value of 1.0 here would be a lot.
//
// This can be useful to make the AI play worse, to make it more fun, or to diversify self-play.
//
// Set to 0 to disable randomness -- this is the default.
func (ab *Searcher) WithRandomness(randomness float32) *Searcher {
	ab.randomness = randomness
	return ab
}

func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(max_depth=%d, max_time=%s, %s)", ab.maxDepth, ab.maxTime, ab.scorer)
}

// search holds the state of one call to Search.
type search struct {
	*Searcher
	ctx      context.Context
	deadline time.Time
	stats    Stats
}

// Search implements the Searcher interface.
//
// It returns movesScores always nil, because it wouldn't be a good approximation for the non-best move.
// This is because of the pruning aspect of the algorithm: bad moves are cut short, so alpha-beta pruning score
// estimation for bad moves will not be a good one.
func (ab *Searcher) Search(ctx context.Context, s *State) (move Move, next *State, score float32, movesScores []float32, err error) {
	moves, err := searchers.LegalMovesOrErr(s)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	if len(moves) == 1 {
		return searchers.Only(s, moves[0])
	}

	start := time.Now()
	srch := &search{Searcher: ab, ctx: ctx}
	if ab.maxTime > 0 {
		srch.deadline = start.Add(ab.maxTime)
	}
	root := s
	mover := s.Turn()
	if mover != PlayerMrX {
		root = s.AssumeMrXAt(beliefLocation(s))
	}
	move, score, err = srch.recursion(root, ab.maxDepth, float32(-math.MaxFloat32), float32(math.MaxFloat32))
	if err != nil {
		return nil, nil, 0, nil, err
	}
	next, _, err = s.Act(move)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	if mover != PlayerMrX {
		score = -score
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("alphabeta: %s playing %s, score=%.3f, elapsed=%s, stats=%+v",
			s.Player(mover).Name, move, score, elapsed, srch.stats)
	}
	return move, next, score, nil, nil
}

// beliefLocation is where detectives assume Mr. X is: ai.LastKnownMrX, unless a detective is standing
// there, in which case Mr. X has certainly left, and the first free neighbour is taken.
func beliefLocation(s *State) board.Location {
	loc := ai.LastKnownMrX(s)
	occupied := generics.SetWith(generics.SliceMap(s.Detectives(), func(p Player) board.Location { return p.Location })...)
	if !occupied.Has(loc) {
		return loc
	}
	g := s.Graph()
	for _, t := range board.Transports {
		for neighbour := range g.NeighborsIter(loc, t) {
			if !occupied.Has(neighbour) {
				return neighbour
			}
		}
	}
	return loc
}

// recursion of the alpha-beta pruning algorithm, with depthLeft plies to go.
// Scores are from Mr. X's perspective. It returns a nil move if the player on turn had to skip.
func (srch *search) recursion(s *State, depthLeft int, alpha, beta float32) (bestMove Move, bestScore float32, err error) {
	if err = srch.ctx.Err(); err != nil {
		return
	}
	moves := s.LegalMoves(s.Turn())
	if len(moves) == 0 {
		// Only detectives can be left without moves in an unfinished match: they skip the turn.
		var next *State
		next, _, err = s.Skip()
		if err != nil {
			return
		}
		if next.IsFinished() {
			_, bestScore = ai.IsEndGameAndScore(next)
			return
		}
		_, bestScore, err = srch.recursion(next, depthLeft, alpha, beta)
		return nil, bestScore, err
	}

	maximizing := s.Turn() == PlayerMrX
	nextStates, scores, err := srch.executeAndScoreMoves(s, moves)
	if err != nil {
		return
	}

	// Winning moves need no further exploration.
	winScore := -ai.WinGameScore
	if maximizing {
		winScore = ai.WinGameScore
	}
	for ii, score := range scores {
		if score == winScore && nextStates[ii].IsFinished() {
			return moves[ii], score, nil
		}
	}

	isLeaf := depthLeft <= 1
	if !isLeaf && !srch.deadline.IsZero() && time.Now().After(srch.deadline) {
		srch.stats.TimeCutoffs++
		isLeaf = true
	}
	if isLeaf {
		if srch.randomness > 0 {
			for ii := range scores {
				if !nextStates[ii].IsFinished() {
					noise := float32(rand.NormFloat64()*float64(srch.randomness)) * ai.WinGameScore
					scores[ii] = ai.SquashScore(scores[ii] + noise)
				}
			}
		}
		var bestIdx int
		if maximizing {
			bestIdx = generics.ArgMax(scores)
		} else {
			bestIdx = generics.ArgMin(scores)
		}
		return moves[bestIdx], scores[bestIdx], nil
	}

	// Explore from the best scoring first: it prunes more.
	bestScore = float32(math.MaxFloat32)
	if maximizing {
		bestScore = -bestScore
	}
	for _, moveIdx := range generics.SliceOrdering(scores, maximizing) {
		score := scores[moveIdx]
		if !nextStates[moveIdx].IsFinished() {
			_, score, err = srch.recursion(nextStates[moveIdx], depthLeft-1, alpha, beta)
			if err != nil {
				return nil, 0, err
			}
		}
		if bestMove == nil || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestMove, bestScore = moves[moveIdx], score
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		if beta <= alpha {
			// The other side will never take this path.
			srch.stats.Prunes++
			break
		}
	}
	return bestMove, bestScore, nil
}

// executeAndScoreMoves creates the states after executing each of the moves,
// and returns the new states and their scores according to the scorer. End-game states
// take the win score instead.
func (srch *search) executeAndScoreMoves(s *State, moves []Move) (nextStates []*State, scores []float32, err error) {
	nextStates = make([]*State, len(moves))
	scores = make([]float32, len(moves))
	toScore := make([]*State, 0, len(moves))
	for ii, move := range moves {
		nextStates[ii], _, err = s.Act(move)
		if err != nil {
			return nil, nil, err
		}
		if isEnd, score := ai.IsEndGameAndScore(nextStates[ii]); isEnd {
			scores[ii] = score
		} else {
			toScore = append(toScore, nextStates[ii])
		}
	}
	srch.stats.Nodes += len(moves)
	srch.stats.Evals += len(toScore)
	if len(toScore) == 0 {
		return
	}
	scored := srch.scorer.BatchScore(toScore)
	scoredIdx := 0
	for ii := range scores {
		if !nextStates[ii].IsFinished() {
			scores[ii] = scored[scoredIdx]
			scoredIdx++
		}
	}
	return
}
