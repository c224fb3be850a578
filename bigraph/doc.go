// Package bigraph implements a two-colored undirected graph with labeled edges.
//
// Vertices carry a color (one of the two colors fixed at construction time) and
// a name that is unique within its color; two vertices of different colors may
// share a name. Every edge connects vertices of opposite colors and carries
// exactly one Label. Edges are stored in both directions and the two directions
// always agree.
//
// The graph is not safe for concurrent mutation.
package bigraph
