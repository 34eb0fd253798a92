package render

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/porder/pkg/ordering"
)

func sampleStore() *ordering.Store {
	s := ordering.New(ordering.Bounds{Start: 0, Goal: 100})
	s.AddOrder(1, 2)
	s.AddOrder(2, 3)
	s.AddOrder(1, 4)
	return s
}

func TestToDOT_Golden(t *testing.T) {
	s := sampleStore()
	order, err := s.Topsort(s.Steps())
	require.NoError(t, err)

	dot := ToDOT(s, Options{Sentinels: true, Order: order})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "hasse_sentinels", []byte(dot))
}

func TestToDOT_ReductionAndClosure(t *testing.T) {
	s := sampleStore()

	hasse := ToDOT(s, Options{})
	assert.Contains(t, hasse, `"1" -> "2";`)
	assert.Contains(t, hasse, `"2" -> "3";`)
	assert.NotContains(t, hasse, `"1" -> "3";`, "implied pair drawn in reduction")
	assert.NotContains(t, hasse, "start")
	assert.Contains(t, hasse, `"1" [label="S(1)"];`)

	closure := ToDOT(s, Options{Closure: true})
	assert.Contains(t, closure, `"1" -> "3";`)
	assert.Equal(t, 4, strings.Count(closure, "->"))
}

func TestToDOT_Empty(t *testing.T) {
	s := ordering.New(ordering.DefaultBounds())
	dot := ToDOT(s, Options{Sentinels: true})

	assert.Contains(t, dot, `"0" [label="start"`)
	assert.Contains(t, dot, `"2147483647" [label="goal"`)
	assert.NotContains(t, dot, "->")
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleStore(), Options{Sentinels: true}))
	require.NoError(t, err)

	out := string(svg)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `viewBox="0 0 `)
	assert.Contains(t, out, "S(4)")
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "offset viewBox",
			in:   `<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 40.25"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 40.25" width="100" height="40"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(normalizeViewBox([]byte(tt.in))))
		})
	}
}
