// Package features implements the feature vector of a State, always from the point of view of
// Mr. X. It is meant to be used by the scorers in package ai.
package features

import (
	"fmt"
	"io"

	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/state"
	"k8s.io/klog/v2"
)

// Id represent an enum of features.
type Id uint8

// Setter is the signature of a feature setter: it stores the values of the feature described by
// spec in f[spec.VecIndex:spec.VecIndex+spec.Dim].
type Setter func(s *State, spec *Spec, f []float32)

const (
	// IdDanger is the sum of the inverse-square distances to each detective-class player.
	IdDanger Id = iota

	// IdMinDistance is the distance to the nearest detective-class player, capped at MaxDistance.
	IdMinDistance

	// IdNumClose is the number of detective-class players within 1 and within 2 hops.
	IdNumClose

	// IdCenterHops is the distance to the center of the board, capped at MaxDistance.
	IdCenterHops

	// IdMobility is the number of distinct single move destinations of Mr. X and, of those, how many are
	// not adjacent to any detective-class player.
	IdMobility

	// IdTickets is the number of tickets of Mr. X, one per ticket kind.
	IdTickets

	// IdRoundsLeft in the match, counting the current one.
	IdRoundsLeft

	// IdRoundsToReveal is the number of rounds until Mr. X is revealed again, 0 if on a reveal round.
	IdRoundsToReveal

	// IdNumFeatureIds defined -- this must always be the last enum.
	IdNumFeatureIds
)

// MaxDistance distances are capped at, including board.Unreachable.
const MaxDistance = 10

// Spec includes the feature name, dimension and index in the concatenation of features.
type Spec struct {
	Id   Id
	Name string
	Dim  int

	// VecIndex refers to the index in the concatenated feature vector.
	VecIndex int
	Setter   Setter
}

var (
	// Specs enumerates in order the features extracted by Vector.
	// The VecIndex attribute is set during the package initialization.
	Specs = [IdNumFeatureIds]Spec{
		{IdDanger, "Danger", 1, 0, fDanger},
		{IdMinDistance, "MinDistance", 1, 0, fDistances},
		{IdNumClose, "NumClose", 2, 0, fDistances},
		{IdCenterHops, "CenterHops", 1, 0, fCenterHops},
		{IdMobility, "Mobility", 2, 0, fMobility},
		{IdTickets, "Tickets", int(NumTickets), 0, fTickets},
		{IdRoundsLeft, "RoundsLeft", 1, 0, fRounds},
		{IdRoundsToReveal, "RoundsToReveal", 1, 0, fRounds},
	}

	// Dim is the dimension of all features concatenated, set during package initialization.
	Dim int
)

func init() {
	Dim = 0
	for ii := range Specs {
		if Specs[ii].Id != Id(ii) {
			klog.Fatalf("features.Specs index %d for %s doesn't match constant.", ii, Specs[ii].Name)
		}
		Specs[ii].VecIndex = Dim
		Dim += Specs[ii].Dim
	}
}

// Vector calculates the feature vector, of length Dim, for the given state.
func Vector(s *State) []float32 {
	f := make([]float32, Dim)
	for ii := range Specs {
		spec := &Specs[ii]
		spec.Setter(s, spec, f)
	}
	return f
}

// PrettyPrint the features in f, one per line.
func PrettyPrint(w io.Writer, f []float32) {
	for ii := range Specs {
		spec := &Specs[ii]
		if spec.Dim == 1 {
			_, _ = fmt.Fprintf(w, "\t%s: %.2f\n", spec.Name, f[spec.VecIndex])
		} else {
			_, _ = fmt.Fprintf(w, "\t%s: %v\n", spec.Name, f[spec.VecIndex:spec.VecIndex+spec.Dim])
		}
	}
}

func capped(d int) float32 {
	return float32(min(d, MaxDistance))
}

func fDanger(s *State, spec *Spec, f []float32) {
	g := s.Graph()
	mrX := s.MrX().Location
	var danger float32
	for _, detective := range s.Detectives() {
		d := g.Distance(mrX, detective.Location)
		if d == board.Unreachable {
			continue
		}
		d = max(d, 1)
		danger += 1 / float32(d*d)
	}
	f[spec.VecIndex] = danger
}

// fDistances sets both IdMinDistance and IdNumClose.
func fDistances(s *State, spec *Spec, f []float32) {
	g := s.Graph()
	mrX := s.MrX().Location
	nearest := board.Unreachable
	var within1, within2 int
	for _, detective := range s.Detectives() {
		d := g.Distance(mrX, detective.Location)
		nearest = min(nearest, d)
		if d <= 1 {
			within1++
		}
		if d <= 2 {
			within2++
		}
	}
	idx := spec.VecIndex
	if spec.Id == IdMinDistance {
		f[idx] = capped(nearest)
		return
	}
	f[idx], f[idx+1] = float32(within1), float32(within2)
}

func fCenterHops(s *State, spec *Spec, f []float32) {
	g := s.Graph()
	f[spec.VecIndex] = capped(g.Distance(s.MrX().Location, g.Center()))
}

func fMobility(s *State, spec *Spec, f []float32) {
	g := s.Graph()
	detectives := s.Detectives()
	destinations := make(map[board.Location]bool)
	for move := range s.MovesIter(PlayerMrX) {
		if _, ok := move.(SingleMove); ok {
			destinations[move.Destination()] = true
		}
	}
	var safe int
	for dest := range destinations {
		isSafe := true
		for _, detective := range detectives {
			if g.Distance(dest, detective.Location) <= 1 {
				isSafe = false
				break
			}
		}
		if isSafe {
			safe++
		}
	}
	f[spec.VecIndex], f[spec.VecIndex+1] = float32(len(destinations)), float32(safe)
}

func fTickets(s *State, spec *Spec, f []float32) {
	tickets := s.MrX().Tickets
	for ii := range NumTickets {
		f[spec.VecIndex+int(ii)] = float32(tickets[ii])
	}
}

// fRounds sets both IdRoundsLeft and IdRoundsToReveal.
func fRounds(s *State, spec *Spec, f []float32) {
	round := s.Round()
	if spec.Id == IdRoundsLeft {
		f[spec.VecIndex] = float32(MaxRounds - round + 1)
		return
	}
	toReveal := MaxRounds - round
	for _, revealRound := range s.RevealSchedule() {
		if revealRound >= round {
			toReveal = revealRound - round
			break
		}
	}
	f[spec.VecIndex] = float32(toReveal)
}
