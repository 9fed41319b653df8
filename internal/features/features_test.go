package features_test

import (
	"bytes"
	"testing"

	"github.com/janpfeifer/yardGo/internal/board"
	. "github.com/janpfeifer/yardGo/internal/features"
	. "github.com/janpfeifer/yardGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	assert.Equal(t, 14, Dim)
	g := BuildGraph(5, TaxiHop(1, 2), TaxiHop(2, 3), TaxiHop(3, 4), TaxiHop(4, 5))
	s := NewMatch(g, 3, []board.Location{1})
	f := Vector(s)
	require.Len(t, f, Dim)
	get := func(id Id) []float32 {
		spec := Specs[id]
		return f[spec.VecIndex : spec.VecIndex+spec.Dim]
	}
	assert.Equal(t, []float32{0.25}, get(IdDanger))
	assert.Equal(t, []float32{2}, get(IdMinDistance))
	assert.Equal(t, []float32{0, 1}, get(IdNumClose))
	assert.Equal(t, []float32{0}, get(IdCenterHops))
	assert.Equal(t, []float32{2, 1}, get(IdMobility))
	assert.Equal(t, []float32{4, 3, 3, 5, 2}, get(IdTickets))
	assert.Equal(t, []float32{24}, get(IdRoundsLeft))
	assert.Equal(t, []float32{4}, get(IdRoundsToReveal))

	var buf bytes.Buffer
	PrettyPrint(&buf, f)
	assert.Contains(t, buf.String(), "Tickets: [4 3 3 5 2]")
	assert.Contains(t, buf.String(), "Danger: 0.25")
}
