package bigraph

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Color identifies one of the two vertex classes of a graph.
type Color string

// Label classifies an edge.
type Label uint8

const (
	// LabelIntersects marks a non-empty overlap without full containment.
	LabelIntersects Label = iota + 1
	// LabelContains marks full containment.
	LabelContains
)

// String returns the string representation of the Label.
func (l Label) String() string {
	switch l {
	case LabelIntersects:
		return "intersects"
	case LabelContains:
		return "contains"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	switch l {
	case LabelIntersects, LabelContains:
		return []byte(l.String()), nil
	default:
		return nil, fmt.Errorf("bigraph: invalid label %d", uint8(l))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	switch string(text) {
	case "intersects":
		*l = LabelIntersects
	case "contains":
		*l = LabelContains
	default:
		return fmt.Errorf("bigraph: invalid label %q", text)
	}
	return nil
}

// ErrSameColor is returned when a graph is constructed with two equal colors.
var ErrSameColor = errors.New("bigraph: colors must be distinct and non-empty")

// ErrUnknownColor indicates a color that is not one of the graph's two colors.
type ErrUnknownColor struct {
	Color Color
}

func (e *ErrUnknownColor) Error() string {
	return fmt.Sprintf("bigraph: unknown color %q", e.Color)
}

// ErrUnknownVertex indicates a vertex that does not exist.
type ErrUnknownVertex struct {
	Name  string
	Color Color
}

func (e *ErrUnknownVertex) Error() string {
	return fmt.Sprintf("bigraph: unknown vertex %q (color %q)", e.Name, e.Color)
}

// ErrDuplicateEdge indicates an AddEdge without force on an existing edge.
//
// It signals a caller invariant violation rather than a recoverable condition.
type ErrDuplicateEdge struct {
	From  string
	To    string
	Label Label
}

func (e *ErrDuplicateEdge) Error() string {
	return fmt.Sprintf("bigraph: duplicate edge %q -> %q (existing label %s)", e.From, e.To, e.Label)
}

// ErrVertexHasEdges indicates a DeleteVertex without force on a vertex with edges.
type ErrVertexHasEdges struct {
	Name  string
	Color Color
	Edges int
}

func (e *ErrVertexHasEdges) Error() string {
	return fmt.Sprintf("bigraph: vertex %q (color %q) still has %d edge(s)", e.Name, e.Color, e.Edges)
}

// Graph is a two-colored undirected graph with one Label per edge.
type Graph struct {
	colors [2]Color
	adj    map[Color]map[string]map[string]Label
	logger *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for no-op mutations. Defaults to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty graph over the two given colors.
func New(a, b Color, optFns ...Option) (*Graph, error) {
	if a == b || a == "" || b == "" {
		return nil, ErrSameColor
	}
	g := &Graph{
		colors: [2]Color{a, b},
		adj: map[Color]map[string]map[string]Label{
			a: {},
			b: {},
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(g)
	}
	return g, nil
}

// Colors returns the graph's two colors in construction order.
func (g *Graph) Colors() (Color, Color) {
	return g.colors[0], g.colors[1]
}

// Opposite returns the other color. ok is false if c is not a graph color.
func (g *Graph) Opposite(c Color) (Color, bool) {
	switch c {
	case g.colors[0]:
		return g.colors[1], true
	case g.colors[1]:
		return g.colors[0], true
	default:
		return "", false
	}
}

// HasVertex reports whether a vertex with the given name and color exists.
func (g *Graph) HasVertex(name string, color Color) bool {
	vs, ok := g.adj[color]
	if !ok {
		return false
	}
	_, ok = vs[name]
	return ok
}

// HasAnyVertex reports whether a vertex with the given name exists in either color.
func (g *Graph) HasAnyVertex(name string) bool {
	return g.HasVertex(name, g.colors[0]) || g.HasVertex(name, g.colors[1])
}

// AddVertex creates a vertex with no edges. Adding an existing vertex is a
// logged no-op.
func (g *Graph) AddVertex(name string, color Color) error {
	vs, ok := g.adj[color]
	if !ok {
		return &ErrUnknownColor{Color: color}
	}
	if _, exists := vs[name]; exists {
		g.logger.Debug("vertex already exists", "name", name, "color", string(color))
		return nil
	}
	vs[name] = map[string]Label{}
	return nil
}

// AddEdge creates the edge between from and to with the given label, creating
// missing endpoint vertices first. Both directions are written together.
//
// If the edge already exists and force is false, AddEdge fails with
// *ErrDuplicateEdge; with force it overwrites the label.
func (g *Graph) AddEdge(from string, fromColor Color, to string, label Label, force bool) error {
	toColor, ok := g.Opposite(fromColor)
	if !ok {
		return &ErrUnknownColor{Color: fromColor}
	}
	if _, err := label.MarshalText(); err != nil {
		return err
	}
	if err := g.AddVertex(from, fromColor); err != nil {
		return err
	}
	if err := g.AddVertex(to, toColor); err != nil {
		return err
	}
	if existing, exists := g.adj[fromColor][from][to]; exists && !force {
		return &ErrDuplicateEdge{From: from, To: to, Label: existing}
	}
	g.adj[fromColor][from][to] = label
	g.adj[toColor][to][from] = label
	return nil
}

// DeleteVertex removes a vertex and all its incident edges (both directions).
//
// Deleting a non-existent vertex is a logged no-op. If the vertex has edges
// and forceDeleteWithEdges is false, DeleteVertex fails with *ErrVertexHasEdges.
func (g *Graph) DeleteVertex(name string, color Color, forceDeleteWithEdges bool) error {
	oppColor, ok := g.Opposite(color)
	if !ok {
		return &ErrUnknownColor{Color: color}
	}
	edges, exists := g.adj[color][name]
	if !exists {
		g.logger.Debug("delete of non-existent vertex", "name", name, "color", string(color))
		return nil
	}
	if len(edges) > 0 && !forceDeleteWithEdges {
		return &ErrVertexHasEdges{Name: name, Color: color, Edges: len(edges)}
	}
	for opp := range edges {
		delete(g.adj[oppColor][opp], name)
	}
	delete(g.adj[color], name)
	return nil
}

// DeleteEdge removes the edge between from and to in both directions.
// Deleting an absent edge is a logged no-op.
func (g *Graph) DeleteEdge(from string, fromColor Color, to string) error {
	toColor, ok := g.Opposite(fromColor)
	if !ok {
		return &ErrUnknownColor{Color: fromColor}
	}
	edges, exists := g.adj[fromColor][from]
	if !exists {
		g.logger.Debug("delete of edge at non-existent vertex", "from", from, "to", to)
		return nil
	}
	if _, exists := edges[to]; !exists {
		g.logger.Debug("delete of non-existent edge", "from", from, "to", to)
		return nil
	}
	delete(edges, to)
	delete(g.adj[toColor][to], from)
	return nil
}

// VerticesOpposite returns the sorted names of all vertices connected to the
// given vertex, optionally restricted to edges carrying one of the given
// labels. An empty label filter matches every edge.
//
// This is the fundamental traversal primitive; the higher-level containment
// and intersection queries are built on it.
func (g *Graph) VerticesOpposite(name string, color Color, labels ...Label) ([]string, error) {
	if _, ok := g.Opposite(color); !ok {
		return nil, &ErrUnknownColor{Color: color}
	}
	edges, exists := g.adj[color][name]
	if !exists {
		return nil, &ErrUnknownVertex{Name: name, Color: color}
	}
	names := make([]string, 0, len(edges))
	for opp, label := range edges {
		if len(labels) > 0 && !containsLabel(labels, label) {
			continue
		}
		names = append(names, opp)
	}
	sort.Strings(names)
	return names, nil
}

// EdgeLabel returns the label of the edge between from and to, if present.
func (g *Graph) EdgeLabel(from string, fromColor Color, to string) (Label, bool) {
	label, ok := g.adj[fromColor][from][to]
	return label, ok
}

// Vertices returns the sorted names of all vertices of the given color.
func (g *Graph) Vertices(color Color) []string {
	vs := g.adj[color]
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VertexCount returns the number of vertices of the given color.
func (g *Graph) VertexCount(color Color) int {
	return len(g.adj[color])
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.adj[g.colors[0]] {
		n += len(edges)
	}
	return n
}

// ReallyUndirected verifies that both directions of every edge exist and agree.
//
// Production code paths maintain this by construction; the check exists for
// tests and for validating deserialized snapshots.
func (g *Graph) ReallyUndirected() bool {
	for i, color := range g.colors {
		oppColor := g.colors[1-i]
		for name, edges := range g.adj[color] {
			for opp, label := range edges {
				back, ok := g.adj[oppColor][opp]
				if !ok {
					return false
				}
				if backLabel, ok := back[name]; !ok || backLabel != label {
					return false
				}
			}
		}
	}
	return true
}

func containsLabel(labels []Label, l Label) bool {
	for _, candidate := range labels {
		if candidate == l {
			return true
		}
	}
	return false
}
