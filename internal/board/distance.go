package board

import "math"

// Unreachable is the distance reported between locations with no path between them, or when
// one of them is not on the board.
const Unreachable = math.MaxInt32

// unreachableHops is the internal encoding of Unreachable in the distance table.
const unreachableHops = math.MaxUint8

// buildDistances runs one breadth-first search from every location, over edges of any transport.
// It also picks the center of the board.
func (g *Graph) buildDistances() {
	n := len(g.locations)
	g.dist = make([]uint8, n*n)
	for ii := range g.dist {
		g.dist[ii] = unreachableHops
	}
	queue := make([]int, 0, n)
	for source := range n {
		row := g.dist[source*n : (source+1)*n]
		row[source] = 0
		queue = append(queue[:0], source)
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			next := row[current] + 1
			for _, t := range Transports {
				for _, dest := range g.neighbors[current][t] {
					destIdx := g.index[dest]
					if row[destIdx] == unreachableHops {
						row[destIdx] = next
						queue = append(queue, destIdx)
					}
				}
			}
		}
	}

	// Center: smallest eccentricity, ties broken by the smallest location.
	bestEccentricity := math.MaxInt
	for idx, loc := range g.locations {
		eccentricity := 0
		for _, d := range g.dist[idx*n : (idx+1)*n] {
			eccentricity = max(eccentricity, int(d))
		}
		if eccentricity < bestEccentricity {
			bestEccentricity = eccentricity
			g.center = loc
		}
	}
}

// Distance returns the minimum number of hops (with any transport) between a and b.
//
// It returns Unreachable if there is no path or if any of the locations is not on the board.
func (g *Graph) Distance(a, b Location) int {
	aIdx, foundA := g.index[a]
	bIdx, foundB := g.index[b]
	if !foundA || !foundB {
		return Unreachable
	}
	d := g.dist[aIdx*len(g.locations)+bIdx]
	if d == unreachableHops {
		return Unreachable
	}
	return int(d)
}

// Center returns the location with the smallest eccentricity (largest distance to any other
// location), the topological center of the board.
func (g *Graph) Center() Location {
	return g.center
}
