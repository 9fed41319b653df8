package ai

import (
	"fmt"

	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/parameters"
	. "github.com/janpfeifer/yardGo/internal/state"
)

// maxHeuristicScore bounds the heuristic scores, so they are never confused with a win.
const maxHeuristicScore = 0.99 * WinGameScore

// Heuristic scores a state combining:
//
//   - Danger: the sum of the inverse-square distances from Mr. X to each detective-class player.
//   - Center: the number of hops from Mr. X to the center of the board. Far from the center
//     there are fewer ways to escape.
//   - Tickets: Mr. X's tickets (double tickets count twice), for the moves he still can make.
//
// The weighted sum (danger and center are penalties) is squashed to (-maxHeuristicScore, maxHeuristicScore).
//
// It scores the location of Mr. X stored in the state: for the detectives' point of view, use
// State.AssumeMrXAt first.
type Heuristic struct {
	Danger, Center, Tickets float32
}

// Assert Heuristic is a Scorer.
var _ Scorer = Heuristic{}

// DefaultHeuristic weights.
var DefaultHeuristic = Heuristic{Danger: 3, Center: 0.1, Tickets: 0.05}

// NewHeuristic creates a Heuristic from DefaultHeuristic, with the weights optionally changed by the
// parameters "danger", "center" and "tickets". The parameters used are popped from params.
func NewHeuristic(params parameters.Params) (h Heuristic, err error) {
	h = DefaultHeuristic
	if h.Danger, err = parameters.PopParamOr(params, "danger", h.Danger); err != nil {
		return
	}
	if h.Center, err = parameters.PopParamOr(params, "center", h.Center); err != nil {
		return
	}
	h.Tickets, err = parameters.PopParamOr(params, "tickets", h.Tickets)
	return
}

// Score implements Scorer.
func (h Heuristic) Score(s *State) float32 {
	if isEnd, score := IsEndGameAndScore(s); isEnd {
		return score
	}
	g := s.Graph()
	mrX := s.MrX()
	var danger float32
	for _, detective := range s.Detectives() {
		d := g.Distance(mrX.Location, detective.Location)
		if d == board.Unreachable {
			continue
		}
		d = max(d, 1)
		danger += 1 / float32(d*d)
	}
	centerHops := g.Distance(mrX.Location, g.Center())
	if centerHops == board.Unreachable {
		centerHops = 0
	}
	tickets := mrX.Tickets.Total() + mrX.Tickets[DoubleTicket]
	x := h.Tickets*float32(tickets) - h.Danger*danger - h.Center*float32(centerHops)
	return maxHeuristicScore * SquashScore(x) / WinGameScore
}

func (h Heuristic) String() string {
	return fmt.Sprintf("heuristic(danger=%g,center=%g,tickets=%g)", h.Danger, h.Center, h.Tickets)
}
