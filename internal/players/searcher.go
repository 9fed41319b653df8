package players

import (
	"context"
	"fmt"

	"github.com/janpfeifer/yardGo/internal/searchers"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// SearcherPlayer is a Controller backed by a searchers.Searcher.
type SearcherPlayer struct {
	Name     string
	Searcher searchers.Searcher
}

// Assert that SearcherPlayer is a Controller.
var _ Controller = &SearcherPlayer{}

// NewSearcherPlayer returns a Controller that chooses moves with searcher. The name is used for logging.
func NewSearcherPlayer(name string, searcher searchers.Searcher) *SearcherPlayer {
	return &SearcherPlayer{Name: name, Searcher: searcher}
}

// Play implements the Controller interface.
func (p *SearcherPlayer) Play(ctx context.Context, s *State) (Move, error) {
	move, _, score, _, err := p.Searcher.Search(ctx, s)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s failed to search for %s", p, s.Player(s.Turn()).Name)
	}
	if klog.V(2).Enabled() {
		klog.Infof("Round %d: AI (%s) playing %s, score=%.3f", s.Round(), p, move, score)
	}
	return move, nil
}

// String implements fmt.Stringer.
func (p *SearcherPlayer) String() string {
	if stringer, ok := p.Searcher.(fmt.Stringer); ok {
		return fmt.Sprintf("%s:%s", p.Name, stringer)
	}
	return p.Name
}
