// Package board holds the static transport graph of the game: locations, typed edges between
// them and the precomputed all-pairs shortest-path distances.
//
// A Graph is built once, and it is read-only afterward: it is safe for concurrent use.
package board

import (
	_ "embed"
	"encoding/json"
	"io"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Location identifies a node of the board. Valid locations are positive.
type Location int

// NoLocation is the zero value, used for unknown or concealed locations.
const NoLocation Location = 0

// Transport is the kind of edge connecting two locations.
type Transport uint8

const (
	Taxi Transport = iota
	Bus
	Underground

	// NumTransports is the number of transport kinds.
	NumTransports
)

// Transports enumerates all the transport kinds.
var Transports = [NumTransports]Transport{Taxi, Bus, Underground}

var transportNames = [NumTransports]string{"taxi", "bus", "underground"}

// ErrInvalidBoard is returned (wrapped) when the node list can't be turned into a graph.
var ErrInvalidBoard = errors.New("invalid board")

// String returns the name used in the board files.
func (t Transport) String() string {
	if t >= NumTransports {
		return "unknown"
	}
	return transportNames[t]
}

// ParseTransport converts a transport name ("taxi", "bus" or "underground") to a Transport.
func ParseTransport(name string) (Transport, error) {
	for ii, tName := range transportNames {
		if strings.EqualFold(name, tName) {
			return Transport(ii), nil
		}
	}
	return NumTransports, errors.Errorf("unknown transport %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Transport) MarshalText() ([]byte, error) {
	if t >= NumTransports {
		return nil, errors.Errorf("invalid transport %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transport) UnmarshalText(text []byte) (err error) {
	*t, err = ParseTransport(string(text))
	return
}

// Position is the 2D display coordinate of a location. It has no meaning for the rules.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is an outgoing connection of a Node.
type Edge struct {
	Destination Location  `json:"destination"`
	Transport   Transport `json:"type"`
}

// Node is a location and its outgoing edges, as stored in the board files.
type Node struct {
	ID       Location `json:"id"`
	Position Position `json:"position"`
	Edges    []Edge   `json:"edges"`
}

// Graph is the immutable board: it answers adjacency and distance queries.
type Graph struct {
	locations []Location       // Sorted.
	index     map[Location]int // Location to its index in locations.
	positions []Position

	// neighbors[idx][transport] are the sorted destinations from locations[idx].
	neighbors [][NumTransports][]Location

	// dist is a len(locations)^2 table of hop counts, with unreachableHops for no path.
	dist   []uint8
	center Location
}

// New builds the Graph from the list of nodes, and precomputes the distances between all
// locations.
//
// Edges are made symmetric: an edge from a to b implies the same edge type from b to a.
func New(nodes []Node) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, errors.Wrapf(ErrInvalidBoard, "no nodes given")
	}
	if len(nodes) >= unreachableHops {
		return nil, errors.Wrapf(ErrInvalidBoard, "too many nodes (%d), at most %d supported",
			len(nodes), unreachableHops-1)
	}
	g := &Graph{
		locations: make([]Location, 0, len(nodes)),
		index:     make(map[Location]int, len(nodes)),
	}
	for _, node := range nodes {
		if node.ID <= NoLocation {
			return nil, errors.Wrapf(ErrInvalidBoard, "invalid location id %d", node.ID)
		}
		if _, found := g.index[node.ID]; found {
			return nil, errors.Wrapf(ErrInvalidBoard, "location %d defined twice", node.ID)
		}
		g.index[node.ID] = 0
		g.locations = append(g.locations, node.ID)
	}
	slices.Sort(g.locations)
	for idx, loc := range g.locations {
		g.index[loc] = idx
	}

	g.positions = make([]Position, len(g.locations))
	sets := make([][NumTransports]map[Location]bool, len(g.locations))
	for _, node := range nodes {
		idx := g.index[node.ID]
		g.positions[idx] = node.Position
		for _, edge := range node.Edges {
			if edge.Transport >= NumTransports {
				return nil, errors.Wrapf(ErrInvalidBoard, "location %d has an edge of unknown transport %d",
					node.ID, edge.Transport)
			}
			toIdx, found := g.index[edge.Destination]
			if !found {
				return nil, errors.Wrapf(ErrInvalidBoard, "location %d has a %s edge to unknown location %d",
					node.ID, edge.Transport, edge.Destination)
			}
			if toIdx == idx {
				return nil, errors.Wrapf(ErrInvalidBoard, "location %d has a %s edge to itself",
					node.ID, edge.Transport)
			}
			addToSet(&sets[idx][edge.Transport], edge.Destination)
			addToSet(&sets[toIdx][edge.Transport], node.ID)
		}
	}
	g.neighbors = make([][NumTransports][]Location, len(g.locations))
	for idx := range sets {
		for _, t := range Transports {
			dests := make([]Location, 0, len(sets[idx][t]))
			for dest := range sets[idx][t] {
				dests = append(dests, dest)
			}
			slices.Sort(dests)
			g.neighbors[idx][t] = dests
		}
	}
	g.buildDistances()
	return g, nil
}

func addToSet(set *map[Location]bool, loc Location) {
	if *set == nil {
		*set = make(map[Location]bool)
	}
	(*set)[loc] = true
}

// Load reads a board in the JSON format of the board files (a list of Node) and builds the Graph.
func Load(r io.Reader) (*Graph, error) {
	var nodes []Node
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, errors.Wrapf(err, "failed to decode board nodes")
	}
	return New(nodes)
}

//go:embed data/board.json
var defaultBoardJSON string

var defaultGraph = sync.OnceValues(func() (*Graph, error) {
	g, err := Load(strings.NewReader(defaultBoardJSON))
	if err != nil {
		return nil, errors.WithMessage(err, "embedded default board")
	}
	return g, nil
})

// Default returns the standard 199 locations board. It is built only once and shared.
func Default() (*Graph, error) {
	return defaultGraph()
}

// Len returns the number of locations.
func (g *Graph) Len() int {
	return len(g.locations)
}

// Locations returns all locations, sorted. It returns a newly allocated slice.
func (g *Graph) Locations() []Location {
	return slices.Clone(g.locations)
}

// Has returns whether loc is a location of the board.
func (g *Graph) Has(loc Location) bool {
	_, found := g.index[loc]
	return found
}

// Position returns the display position of the location.
func (g *Graph) Position(loc Location) (pos Position, found bool) {
	idx, found := g.index[loc]
	if !found {
		return
	}
	return g.positions[idx], true
}

// Node reconstructs the Node for the location, with the symmetric set of edges, sorted by
// transport and then destination.
func (g *Graph) Node(loc Location) (node Node, found bool) {
	idx, found := g.index[loc]
	if !found {
		return
	}
	node = Node{ID: loc, Position: g.positions[idx]}
	for _, t := range Transports {
		for _, dest := range g.neighbors[idx][t] {
			node.Edges = append(node.Edges, Edge{Destination: dest, Transport: t})
		}
	}
	return node, true
}

// NeighborsIter iterates over the destinations reachable from loc in one hop of the given
// transport, in ascending order.
func (g *Graph) NeighborsIter(loc Location, t Transport) iter.Seq[Location] {
	return func(yield func(Location) bool) {
		idx, found := g.index[loc]
		if !found || t >= NumTransports {
			return
		}
		for _, dest := range g.neighbors[idx][t] {
			if !yield(dest) {
				return
			}
		}
	}
}

// Neighbors returns the destinations reachable from loc in one hop of the given transport.
// It returns a newly allocated slice.
func (g *Graph) Neighbors(loc Location, t Transport) []Location {
	return slices.Collect(g.NeighborsIter(loc, t))
}

// Connected returns whether there is an edge of the given transport between a and b.
func (g *Graph) Connected(a, b Location, t Transport) bool {
	idx, found := g.index[a]
	if !found || t >= NumTransports {
		return false
	}
	_, found = slices.BinarySearch(g.neighbors[idx][t], b)
	return found
}
