// yard plays a match of Scotland Yard on the terminal: a human against the AI, humans only
// (hotseat), or watching the AI play against itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/players"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/janpfeifer/yardGo/internal/ui/cli"
	"github.com/janpfeifer/yardGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHotseat  = flag.Bool("hotseat", false, "Hotseat match: humans play all players.")
	flagWatch    = flag.Bool("watch", false, "Watch mode: AI vs AI playing.")
	flagPlayAs   = flag.String("play_as", "mrx", "Side played by the human: \"mrx\" or \"detectives\".")
	flagMrX      = flag.String("mrx_ai", "medium", "AI configuration or difficulty of Mr. X, when played by the AI.")
	flagDetAI    = flag.String("detectives_ai", "medium", "AI configuration or difficulty of the detectives, when played by the AI.")
	flagNumDet   = flag.Int("num_detectives", 4, "Number of detectives.")
	flagBobbies  = flag.Bool("bobbies", false, "Auto-fill the missing detectives with Bobbies, controlled by the AI.")
	flagReveal   = flag.Int("reveal", DefaultRevealFrequency, "Mr. X is revealed every these many rounds, and on the last.")
	flagBonus    = flag.Int("detective_bonus", 0, "Extra tickets of each transport for the detectives.")
	flagPenalty  = flag.Int("mrx_penalty", 0, "Tickets of each transport taken from Mr. X.")
	flagShuffle  = flag.Bool("shuffle", true, "Draw random starting locations.")
	flagBoard    = flag.String("board", "", "Path to a board JSON file. Default is the classic London board.")
	flagShowMrX  = flag.Bool("show_mrx", false, "Show Mr. X's moves while concealed (only in watch mode).")
	flagNoColor  = flag.Bool("no_color", false, "Disable colors.")
	flagMaxMoves = flag.Int("max_moves", 0, "If > 0, stop the match after these many moves.")

	flagKeepTickets = flag.Bool("keep_tickets", false, "Discard the tickets used by the detectives, instead of giving them to Mr. X.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagHotseat && *flagWatch {
		klog.Exitf("--hotseat and --watch cannot be used together")
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	ui := cli.NewUI(!*flagNoColor, false)
	ui.ShowMrX = *flagWatch && *flagShowMrX
	registry := players.DefaultRegistry().Register("human", cli.NewHumanBuilder(ui))
	s := must.M1(newMatch())
	controllers := must.M1(controllersFor(s))

	var numMoves int
	for !s.IsFinished() {
		if globalCtx.Err() != nil {
			klog.Exitf("Interrupted: %v", globalCtx.Err())
		}
		if *flagMaxMoves > 0 && numMoves >= *flagMaxMoves {
			klog.Warningf("Stopping match after %d moves", numMoves)
			break
		}
		seat := s.Turn()
		var (
			next   *State
			events []Event
			err    error
		)
		if !s.HasLegalMoves(seat) {
			next, events, err = s.Skip()
		} else {
			var move Move
			if controllers[seat] == "human" {
				move, err = must.M1(registry.New("human")).Play(globalCtx, s)
			} else {
				fmt.Printf("  %s is thinking... ", s.Player(seat).Name)
				spinner := spinning.New(globalCtx)
				move, err = registry.ChooseMove(globalCtx, s, seat, controllers[seat])
				spinner.Done()
				fmt.Println()
			}
			if err != nil {
				klog.Exitf("Failed to choose a move for %s: %+v", s.Player(seat).Name, err)
			}
			next, events, err = s.Act(move)
			numMoves++
		}
		if err != nil {
			klog.Exitf("Failed to run match: %+v", err)
		}
		ui.PrintEvents(next, events)
		s = next
	}
	ui.PrintView(s.View())
	ui.PrintWinner(s)
}

// newMatch creates the match configured by the flags.
func newMatch() (*State, error) {
	var g *board.Graph
	var err error
	if *flagBoard == "" {
		g, err = board.Default()
	} else {
		var f *os.File
		f, err = os.Open(*flagBoard)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		g, err = board.Load(f)
	}
	if err != nil {
		return nil, err
	}
	settings := Settings{
		RevealFrequency:      *flagReveal,
		DetectiveTicketBonus: *flagBonus,
		MrXTicketPenalty:     *flagPenalty,
		KeepDetectiveTickets: *flagKeepTickets,
		AutoFillBobbies:      *flagBobbies,
	}
	configs := []PlayerConfig{{Role: MrX}}
	for range *flagNumDet {
		configs = append(configs, PlayerConfig{Role: Detective})
	}
	var options []Option
	if *flagShuffle {
		seed := uint64(time.Now().UnixNano())
		options = append(options, WithShuffledStarts(rand.New(rand.NewPCG(seed, seed>>1))))
	}
	return New(g, settings, configs, options...)
}

// controllersFor returns the configuration of the controller of each seat: "human" or an AI configuration.
func controllersFor(s *State) ([]string, error) {
	humanMrX, humanDetectives := *flagHotseat, *flagHotseat
	if !*flagHotseat && !*flagWatch {
		switch strings.ToLower(*flagPlayAs) {
		case "mrx", "x":
			humanMrX = true
		case "detectives", "detective", "d":
			humanDetectives = true
		default:
			return nil, errors.Errorf("invalid --play_as=%q, valid values are \"mrx\" or \"detectives\"", *flagPlayAs)
		}
	}
	controllers := make([]string, s.NumPlayers())
	for seat, p := range s.Players() {
		switch {
		case p.Role == MrX && humanMrX, p.Role == Detective && humanDetectives:
			controllers[seat] = "human"
		case p.Role == MrX:
			controllers[seat] = *flagMrX
		default:
			// Bobbies are always controlled by the AI.
			controllers[seat] = *flagDetAI
		}
		klog.V(1).Infof("%s is played by %q", p.Name, controllers[seat])
	}
	return controllers, nil
}
