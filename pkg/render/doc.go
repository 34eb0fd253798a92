// Package render draws an ordering as a Graphviz node-link diagram.
//
// [ToDOT] writes the Hasse diagram of the order (or, with
// [Options.Closure], every recorded pair) as DOT text. [RenderSVG] lays the
// DOT out with the embedded Graphviz build and returns SVG bytes.
//
//	dot := render.ToDOT(store, render.Options{Sentinels: true})
//	svg, err := render.RenderSVG(ctx, dot)
package render
