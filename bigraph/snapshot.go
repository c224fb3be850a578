package bigraph

import (
	"errors"
	"fmt"
)

// Snapshot is a plain-value copy of a graph's state, suitable for
// serialization and for equality comparison in tests.
type Snapshot struct {
	Colors    [2]Color                              `json:"colors"`
	Adjacency map[Color]map[string]map[string]Label `json:"adjacency"`
}

// Snapshot returns a deep copy of the graph's state.
func (g *Graph) Snapshot() Snapshot {
	adj := make(map[Color]map[string]map[string]Label, 2)
	for color, vs := range g.adj {
		vsCopy := make(map[string]map[string]Label, len(vs))
		for name, edges := range vs {
			edgesCopy := make(map[string]Label, len(edges))
			for opp, label := range edges {
				edgesCopy[opp] = label
			}
			vsCopy[name] = edgesCopy
		}
		adj[color] = vsCopy
	}
	return Snapshot{Colors: g.colors, Adjacency: adj}
}

// FromSnapshot reconstructs a graph from a snapshot, validating colors,
// labels and edge symmetry.
func FromSnapshot(s Snapshot, optFns ...Option) (*Graph, error) {
	g, err := New(s.Colors[0], s.Colors[1], optFns...)
	if err != nil {
		return nil, err
	}
	for color, vs := range s.Adjacency {
		if _, ok := g.Opposite(color); !ok {
			return nil, &ErrUnknownColor{Color: color}
		}
		for name, edges := range vs {
			if err := g.AddVertex(name, color); err != nil {
				return nil, err
			}
			for opp, label := range edges {
				if _, err := label.MarshalText(); err != nil {
					return nil, err
				}
				got, exists := s.Adjacency[mustOpposite(g, color)][opp][name]
				if !exists || got != label {
					return nil, fmt.Errorf("bigraph: asymmetric edge %q -> %q in snapshot", name, opp)
				}
				g.adj[color][name][opp] = label
			}
		}
	}
	if !g.ReallyUndirected() {
		return nil, errors.New("bigraph: snapshot is not undirected")
	}
	return g, nil
}

func mustOpposite(g *Graph, c Color) Color {
	opp, _ := g.Opposite(c)
	return opp
}
