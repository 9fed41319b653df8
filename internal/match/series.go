package match

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/yardGo/internal/generics"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Summary of a series of matches. It is safe for concurrent use.
type Summary struct {
	mu      sync.Mutex
	start   time.Time
	total   int
	played  int
	wins    map[Side]int
	endings map[Ending]int
	rounds  int
}

// NewSummary for a series of total matches.
func NewSummary(total int) *Summary {
	return &Summary{
		start:   time.Now(),
		total:   total,
		wins:    make(map[Side]int),
		endings: make(map[Ending]int),
	}
}

// Add the result of a match.
func (s *Summary) Add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played++
	s.wins[r.Winner]++
	s.endings[r.Ending]++
	s.rounds += r.Rounds
}

// Played returns the number of matches added.
func (s *Summary) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Wins returns the number of matches won by the side.
func (s *Summary) Wins(side Side) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wins[side]
}

// WinRate of the side, from 0 to 1.
func (s *Summary) WinRate(side Side) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.played == 0 {
		return 0
	}
	return float64(s.wins[side]) / float64(s.played)
}

// Endings returns how many matches ended each way.
func (s *Summary) Endings(ending Ending) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endings[ending]
}

// Anomalies is the number of matches stopped by the ceiling.
func (s *Summary) Anomalies() int {
	return s.Endings(EndedByCeiling)
}

// AverageRounds per match.
func (s *Summary) AverageRounds() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.played == 0 {
		return 0
	}
	return float64(s.rounds) / float64(s.played)
}

// String implements fmt.Stringer.
func (s *Summary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", s.played, s.total))
	for _, side := range []Side{SideMrX, SideDetectives} {
		parts = append(parts, fmt.Sprintf("%s: %d wins / ", side, s.wins[side]))
	}
	var endings []string
	for ending, count := range generics.SortedKeysAndValues(s.endings) {
		endings = append(endings, fmt.Sprintf("%s=%d", ending, count))
	}
	avgRounds := 0.0
	if s.played > 0 {
		avgRounds = float64(s.rounds) / float64(s.played)
	}
	parts = append(parts, fmt.Sprintf("endings: %s / avg rounds %.1f - %s",
		strings.Join(endings, ", "), avgRounds, time.Since(s.start).Round(time.Millisecond)))
	return strings.Join(parts, "")
}

// RunSeries plays numMatches independent matches with cfg, with up to parallelism matches
// simultaneously (GOMAXPROCS if parallelism <= 0).
//
// onResult, if not nil, is called (serialized) after each match finishes with the
// summary so far. It returns the summary and the results in match index order.
func RunSeries(ctx context.Context, cfg Config, numMatches, parallelism int, onResult func(*Summary, Result)) (
	*Summary, []Result, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, nil, err
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	summary := NewSummary(numMatches)
	results := make([]Result, numMatches)
	var muResult sync.Mutex
	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(parallelism)
	for matchIdx := range numMatches {
		wg.Go(func() error {
			result, err := run(ctx, cfg, matchIdx)
			if err != nil {
				return err
			}
			results[matchIdx] = result
			summary.Add(result)
			if onResult != nil {
				muResult.Lock()
				onResult(summary, result)
				muResult.Unlock()
			}
			return nil
		})
	}
	if err = wg.Wait(); err != nil {
		return summary, nil, err
	}
	return summary, results, nil
}

// csvHeader of WriteResultsCSV, the tickets_used of each seat follow.
var csvHeader = []string{"id", "index", "winner", "ending", "rounds", "moves", "skips", "events", "duration_ms"}

// WriteResultsCSV writes one record per match. The tickets used by each seat are written in the
// columns "tickets_<seat>", formatted as in Tickets.String.
func WriteResultsCSV(w io.Writer, results []Result) error {
	numSeats := 0
	for _, r := range results {
		numSeats = max(numSeats, len(r.TicketsUsed))
	}
	writer := csv.NewWriter(w)
	header := append([]string(nil), csvHeader...)
	for seat := range numSeats {
		header = append(header, fmt.Sprintf("tickets_%d", seat))
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write results header")
	}
	for _, r := range results {
		row := []string{
			r.ID.String(),
			strconv.Itoa(r.Index),
			r.Winner.String(),
			r.Ending.String(),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.Skips),
			strconv.Itoa(r.Events),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		for seat := range numSeats {
			var used string
			if seat < len(r.TicketsUsed) {
				used = r.TicketsUsed[seat].String()
			}
			row = append(row, used)
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "failed to write results of match #%d", r.Index)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to write results")
}
