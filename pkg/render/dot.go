package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/porder/pkg/ordering"
)

// Graph is the read side of an ordering store that rendering needs.
// [*ordering.Store] satisfies it.
type Graph interface {
	Bounds() ordering.Bounds
	Steps() []ordering.StepID
	Pairs() []ordering.Pair
	Reduction() []ordering.Pair
}

var _ Graph = (*ordering.Store)(nil)

// Options configures DOT output.
type Options struct {
	// Closure draws every pair of the transitive closure. When false only
	// the transitive reduction (the Hasse diagram) is drawn.
	Closure bool

	// Sentinels adds the start and goal steps, linked to every step with no
	// predecessor and from every step with no successor.
	Sentinels bool

	// Order, when set, labels each step with its position in a
	// linearization such as the one returned by [ordering.Store.Topsort].
	Order []ordering.StepID
}

// ToDOT converts an ordering to Graphviz DOT format. Steps appear in
// first-reference order and edges in the order the store reports them, so
// the output is stable for a given store.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph porder {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	pos := make(map[ordering.StepID]int, len(opts.Order))
	for i, id := range opts.Order {
		pos[id] = i + 1
	}

	b := g.Bounds()
	steps := g.Steps()
	if opts.Sentinels {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=circle, fillcolor=lightgrey];\n", nodeID(b.Start), "start")
	}
	for _, id := range steps {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID(id), stepLabel(id, pos[id]))
	}
	if opts.Sentinels {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=circle, fillcolor=lightgrey];\n", nodeID(b.Goal), "goal")
	}

	pairs := g.Reduction()
	if opts.Closure {
		pairs = g.Pairs()
	}

	buf.WriteString("\n")
	hasPred := make(map[ordering.StepID]bool, len(steps))
	hasSucc := make(map[ordering.StepID]bool, len(steps))
	for _, p := range pairs {
		hasSucc[p.Before] = true
		hasPred[p.After] = true
	}
	if opts.Sentinels {
		for _, id := range steps {
			if !hasPred[id] {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", nodeID(b.Start), nodeID(id))
			}
		}
	}
	for _, p := range pairs {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(p.Before), nodeID(p.After))
	}
	if opts.Sentinels {
		for _, id := range steps {
			if !hasSucc[id] {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", nodeID(id), nodeID(b.Goal))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id ordering.StepID) string {
	return strconv.Itoa(int(id))
}

func stepLabel(id ordering.StepID, pos int) string {
	if pos == 0 {
		return fmt.Sprintf("S(%d)", id)
	}
	return fmt.Sprintf("S(%d)\n#%d", id, pos)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose size matches it, so the output scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
