// Package cli implements a command-line UI for the game: it prints the matches, and reads the
// moves of human players.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/yardGo/internal/board"
	"github.com/janpfeifer/yardGo/internal/parameters"
	"github.com/janpfeifer/yardGo/internal/players"
	. "github.com/janpfeifer/yardGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// UI prints matches to a writer, and reads human moves from a reader.
type UI struct {
	w                  io.Writer
	reader             *bufio.Reader
	color, clearScreen bool

	// ShowMrX prints Mr. X's location and moves even while he is concealed: for watching AI matches.
	ShowMrX bool

	styles styles
}

type styles struct {
	title, mrX, detective, turn, reveal, capture, gameOver, prompt, dim lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		mrX:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		detective: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		turn:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		reveal:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
		capture:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		gameOver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(1, 2),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")),
		dim:       lipgloss.NewStyle().Faint(true),
	}
}

// NewUI creates a UI on the standard input and output.
func NewUI(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdin, os.Stdout, color, clearScreen)
}

// NewWithIO creates a UI reading from in and printing to out.
func NewWithIO(in io.Reader, out io.Writer, color bool, clearScreen bool) *UI {
	return &UI{
		w:           out,
		reader:      bufio.NewReader(in),
		color:       color,
		clearScreen: clearScreen,
		styles:      newStyles(color),
	}
}

func (ui *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.w, format, args...)
}

func (ui *UI) println(args ...any) {
	_, _ = fmt.Fprintln(ui.w, args...)
}

// terminalWidth returns the width of the output terminal, or 0 if it is not a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			ui.println()
			continue
		}
		ui.printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// playerStyle returns the style for the player in seat.
func (ui *UI) playerStyle(seat PlayerNum) lipgloss.Style {
	if seat == PlayerMrX {
		return ui.styles.mrX
	}
	return ui.styles.detective
}

// location formats a location, "?" if hidden.
func location(loc board.Location) string {
	if loc == board.NoLocation {
		return "?"
	}
	return strconv.Itoa(int(loc))
}

// PrintView prints the match as seen by observers: the round, the players and Mr. X's travel log.
func (ui *UI) PrintView(v View) {
	if ui.clearScreen {
		ui.printf("\033c")
	}
	header := fmt.Sprintf("Round %d of %d", v.Round, MaxRounds)
	if next, found := nextReveal(v); found {
		header += fmt.Sprintf(", Mr. X shows up on round %d", next)
	}
	ui.println()
	ui.println(ui.styles.title.Render(header))
	ui.println()
	for seat, p := range v.Players {
		marker := "  "
		if PlayerNum(seat) == v.Turn && !v.Finished {
			marker = ui.styles.turn.Render("> ")
		}
		ui.printf("%s%s at %4s  [%s]\n", marker,
			ui.playerStyle(PlayerNum(seat)).Render(fmt.Sprintf("%-14s", p.Name+" ("+p.Role.String()+")")),
			location(p.Location), p.Tickets)
	}
	if v.LastKnownMrX != board.NoLocation && !v.MrX().Revealed {
		ui.printf("  Mr. X was last seen at %d\n", v.LastKnownMrX)
	}
	if log := travelLog(v.History); log != "" {
		ui.println()
		ui.printf("  Mr. X's travel log: %s\n", log)
	}
}

// nextReveal returns the next round Mr. X will be revealed.
func nextReveal(v View) (int, bool) {
	for _, round := range v.RevealSchedule {
		if round >= v.Round {
			return round, true
		}
	}
	return 0, false
}

// travelLog formats the moves of Mr. X in the history: the tickets and, if known, the destination.
func travelLog(history []HistoryEntry) string {
	var parts []string
	for _, entry := range history {
		if entry.Move.Seat() != PlayerMrX {
			continue
		}
		var part string
		switch m := entry.Move.(type) {
		case SingleMove:
			part = m.Ticket.String()
		case DoubleMove:
			part = fmt.Sprintf("%s+%s", m.FirstTicket, m.SecondTicket)
		}
		if dest := entry.Move.Destination(); dest != board.NoLocation {
			part += "@" + strconv.Itoa(int(dest))
		}
		parts = append(parts, fmt.Sprintf("%d:%s", entry.Round, part))
	}
	return strings.Join(parts, " ")
}

// describeMove formats a move, hiding Mr. X's locations unless shown.
func describeMove(s *State, move Move, show bool) string {
	name := s.Player(move.Seat()).Name
	if move.Seat() != PlayerMrX || show {
		return fmt.Sprintf("%s %s", name, moveString(move))
	}
	switch m := move.(type) {
	case SingleMove:
		return fmt.Sprintf("%s took a %s", name, m.Ticket)
	case DoubleMove:
		return fmt.Sprintf("%s made a double move by %s and %s", name, m.FirstTicket, m.SecondTicket)
	}
	return name
}

// moveString formats a move the way it can be typed by a human.
func moveString(move Move) string {
	switch m := move.(type) {
	case SingleMove:
		return fmt.Sprintf("%d -%s-> %d", m.From, m.Ticket, m.To)
	case DoubleMove:
		return fmt.Sprintf("%d -%s-> %d -%s-> %d", m.From, m.FirstTicket, m.Via, m.SecondTicket, m.To)
	}
	return "?"
}

// PrintEvents prints the events of one transition from s (the state after it). Mr. X's moves
// are hidden unless revealed, the match is over, or ui.ShowMrX is set.
func (ui *UI) PrintEvents(s *State, events []Event) {
	show := ui.ShowMrX || s.IsFinished()
	for _, e := range events {
		if e.Kind == EventReveal {
			show = true
		}
	}
	for _, e := range events {
		var line string
		switch e.Kind {
		case EventMove:
			line = ui.playerStyle(e.Seat).Render(describeMove(s, e.Move, show))
		case EventReveal:
			line = ui.styles.reveal.Render(fmt.Sprintf(" Mr. X is seen at %d! ", e.Location))
		case EventCapture:
			line = ui.styles.capture.Render(fmt.Sprintf(" %s captured Mr. X at %d! ", s.Player(e.Seat).Name, e.Location))
		case EventSkip:
			line = ui.styles.dim.Render(fmt.Sprintf("%s has no moves, skipping.", s.Player(e.Seat).Name))
		case EventRoundAdvanced:
			line = ui.styles.dim.Render(fmt.Sprintf("--- round %d ---", e.Round))
		case EventGameOver:
			line = fmt.Sprintf("Game over: %s", e.Reason)
		}
		ui.printf("  %s\n", line)
	}
}

// PrintWinner prints the final result of a finished match.
func (ui *UI) PrintWinner(s *State) {
	ui.println()
	var msg string
	switch s.EndReason() {
	case Capture:
		msg = fmt.Sprintf("*** Mr. X was caught at %d in round %d: DETECTIVES WIN! ***", s.MrX().Location, s.Round())
	case Survival:
		msg = fmt.Sprintf("*** Mr. X escaped after %d rounds: MR. X WINS! ***", s.Round())
	case Stalemate:
		msg = fmt.Sprintf("*** Mr. X is stuck at %d in round %d: DETECTIVES WIN! ***", s.MrX().Location, s.Round())
	default:
		msg = "*** The match is not over ***"
	}
	ui.printCentered(ui.styles.gameOver.Render(msg))
	ui.println()
}

// PrintMoves prints the numbered list of moves, grouped by ticket.
func (ui *UI) PrintMoves(moves []Move) {
	ui.println("- Available moves:")
	for ii, move := range moves {
		ui.printf("  %3d) %s\n", ii+1, moveString(move))
	}
}

var (
	indexParser      = regexp.MustCompile(`^\s*(\d+)\s*$`)
	singleMoveParser = regexp.MustCompile(`^\s*([a-zA-Z]+)[\s,]+(\d+)\s*$`)
	doubleMoveParser = regexp.MustCompile(`^\s*([a-zA-Z]+)[\s,]+(\d+)[\s,]+([a-zA-Z]+)[\s,]+(\d+)\s*$`)

	// ErrParsing is returned by ReadMove after too many inputs that are not a legal move.
	ErrParsing = errors.New("failed to read a move 3 times")
)

// ParseMove parses the text typed by the player on turn in s. It accepts:
//
//   - the number of a move in s.LegalMoves(s.Turn()), starting from 1;
//   - a ticket and a destination: e.g. "taxi 45" or "t 45", see state.Ticket.ShortName for the
//     one letter names ("k" is black);
//   - two tickets and destinations for a double move: e.g. "bus 46 black 79".
//
// It returns an error wrapping ErrIllegalMove if the move is not legal.
func ParseMove(s *State, text string) (Move, error) {
	seat := s.Turn()
	from := s.Player(seat).Location
	if matches := indexParser.FindStringSubmatch(text); len(matches) == 2 {
		moves := s.LegalMoves(seat)
		idx, err := strconv.Atoi(matches[1])
		if err != nil || idx < 1 || idx > len(moves) {
			return nil, errors.Wrapf(ErrIllegalMove, "there is no move number %q, choose from 1 to %d", matches[1], len(moves))
		}
		return moves[idx-1], nil
	}

	var move Move
	if matches := singleMoveParser.FindStringSubmatch(text); len(matches) == 3 {
		ticket, err := ParseTicket(matches[1])
		if err != nil {
			return nil, err
		}
		to, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse location %q", matches[2])
		}
		move = SingleMove{Player: seat, From: from, To: board.Location(to), Ticket: ticket}
	} else if matches := doubleMoveParser.FindStringSubmatch(text); len(matches) == 5 {
		var tickets [2]Ticket
		var locations [2]board.Location
		for ii := range 2 {
			ticket, err := ParseTicket(matches[1+2*ii])
			if err != nil {
				return nil, err
			}
			loc, err := strconv.Atoi(matches[2+2*ii])
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse location %q", matches[2+2*ii])
			}
			tickets[ii], locations[ii] = ticket, board.Location(loc)
		}
		move = DoubleMove{Player: seat, From: from, FirstTicket: tickets[0], Via: locations[0],
			SecondTicket: tickets[1], To: locations[1]}
	} else {
		return nil, errors.Errorf("failed to parse %q: type a move number, or a ticket and a destination (e.g. \"taxi 45\")", text)
	}
	if !s.IsLegal(move) {
		return nil, errors.Wrapf(ErrIllegalMove, "%s is not a legal move for %s", moveString(move), s.Player(seat).Name)
	}
	return move, nil
}

// ReadMove reads the move of the player on turn in s. It gives up with ErrParsing after 3
// attempts, or returns the read error (e.g. io.EOF).
func (ui *UI) ReadMove(s *State) (Move, error) {
	for range 3 {
		ui.printf("    %s %s ",
			ui.playerStyle(s.Turn()).Render(s.Player(s.Turn()).Name),
			ui.styles.prompt.Render("move >"))
		text, err := ui.reader.ReadString('\n')
		if err != nil && (text == "" || err != io.EOF) {
			return nil, err
		}
		move, err := ParseMove(s, strings.TrimSpace(text))
		if err == nil {
			return move, nil
		}
		ui.printf("    * %s\n", err)
	}
	return nil, ErrParsing
}

// Human is a players.Controller that reads its moves from the UI.
type Human struct {
	UI *UI
}

// Assert Human is a players.Controller.
var _ players.Controller = (*Human)(nil)

// Play implements players.Controller: it prints the match and the available moves, and waits for
// the human to type one.
func (h *Human) Play(ctx context.Context, s *State) (Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v := s.View()
		h.UI.PrintView(v)
		if s.Turn() == PlayerMrX && !v.MrX().Revealed {
			h.UI.printf("  %s\n", h.UI.styles.mrX.Render(fmt.Sprintf("(you are hiding at %d)", s.MrX().Location)))
		}
		h.UI.println()
		h.UI.PrintMoves(s.LegalMoves(s.Turn()))
		move, err := h.UI.ReadMove(s)
		if errors.Is(err, ErrParsing) {
			continue
		}
		return move, err
	}
}

// NewHumanBuilder returns a players.Builder of Human players on ui, to be registered as "human".
func NewHumanBuilder(ui *UI) players.Builder {
	return func(parameters.Params) (players.Controller, error) {
		return &Human{UI: ui}, nil
	}
}
