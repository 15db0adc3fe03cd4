// Package topology draws a network model as a node-link diagram.
//
// Convert a model to DOT, then render it with Graphviz:
//
//	dot := topology.ToDOT(m, topology.Options{Detailed: true})
//	svg, err := topology.RenderSVG(ctx, dot)
//
// Nodes are drawn as circles labeled with their names, joint nodes as
// filled double circles, and segments as arrows from inlet to outlet node
// labeled "name [id]". The DOT text can also be fed to any Graphviz tool.
package topology
