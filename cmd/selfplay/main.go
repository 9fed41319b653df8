// selfplay runs a series of AI vs AI matches, and reports the win rates of each side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/yardGo/internal/match"
	"github.com/janpfeifer/yardGo/internal/profilers"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/janpfeifer/yardGo/internal/ui/cli"
	"github.com/janpfeifer/yardGo/internal/ui/spinning"
	"k8s.io/klog/v2"
)

var (
	flagMrX         = flag.String("mrx", "easy", "Mr. X AI configuration or difficulty.")
	flagDetectives  = flag.String("detectives", "easy", "Detectives AI configuration or difficulty.")
	flagNumDet      = flag.Int("num_detectives", 4, "Number of detectives.")
	flagNumMatches  = flag.Int("num_matches", 100, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagSeed       = flag.Uint64("seed", 0, "Seed for the starting locations. If 0, a time based seed is used.")
	flagReveal     = flag.Int("reveal", DefaultRevealFrequency, "Mr. X is revealed every these many rounds, and on the last.")
	flagBonus      = flag.Int("detective_bonus", 0, "Extra tickets of each transport for the detectives.")
	flagPenalty    = flag.Int("mrx_penalty", 0, "Tickets of each transport taken from Mr. X.")
	flagMaxMoves   = flag.Int("max_moves", match.DefaultMaxMoves, "Max moves before a match is stopped as an anomaly.")
	flagCSV        = flag.String("csv", "", "If set, write the results of each match to this CSV file.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print the events of every match. "+
		"Very verbose, and you probably want to set -parallelism=1.")

	flagKeepTickets = flag.Bool("keep_tickets", false, "Discard the tickets used by the detectives, instead of giving them to Mr. X.")

	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	results := runMatches(globalCtx)
	if *flagCSV != "" && results != nil {
		f := must.M1(os.Create(*flagCSV))
		must.M(match.WriteResultsCSV(f, results))
		must.M(f.Close())
		fmt.Printf("Results written to %s\n", *flagCSV)
	}
}

func config() match.Config {
	seed := *flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	cfg := match.Config{
		Settings: Settings{
			RevealFrequency:      *flagReveal,
			DetectiveTicketBonus: *flagBonus,
			MrXTicketPenalty:     *flagPenalty,
			KeepDetectiveTickets: *flagKeepTickets,
		},
		Players:       []PlayerConfig{{Role: MrX}},
		Controllers:   match.Controllers{MrX: *flagMrX, Detectives: *flagDetectives},
		MaxMoves:      *flagMaxMoves,
		ShuffleStarts: true,
		Seed:          seed,
	}
	for range *flagNumDet {
		cfg.Players = append(cfg.Players, PlayerConfig{Role: Detective})
	}
	if *flagPrintSteps {
		ui := cli.NewUI(true, false)
		ui.ShowMrX = true
		var mu sync.Mutex
		cfg.OnEvents = func(matchIdx int, s *State, events []Event) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Printf("Match-%05d:\n", matchIdx)
			ui.PrintEvents(s, events)
		}
	}
	klog.V(1).Infof("Mr. X: %q, detectives: %q, seed=%d", *flagMrX, *flagDetectives, seed)
	return cfg
}

// runMatches plays the series, and returns the results, or nil if interrupted.
func runMatches(ctx context.Context) []match.Result {
	onResult := func(summary *match.Summary, _ match.Result) {
		fmt.Printf("\r%s\033[0K", summary)
	}
	summary, results, err := match.RunSeries(ctx, config(), *flagNumMatches, *flagParallelism, onResult)
	fmt.Println()
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	if err != nil {
		klog.Exitf("Failed to run matches: %+v", err)
	}
	fmt.Printf("%s\n", summary)
	fmt.Printf("Mr. X win rate: %.1f%%, average rounds: %.1f\n",
		100*summary.WinRate(SideMrX), summary.AverageRounds())
	if anomalies := summary.Anomalies(); anomalies > 0 {
		klog.Warningf("%d matches reached the ceiling of %d moves", anomalies, *flagMaxMoves)
	}
	return results
}
