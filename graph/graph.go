// Package graph adapts between the in-core CSR adjacency representation
// and gonum's graph types (spec §4.7), so topology/local-mesh data can be
// handed to ecosystem graph algorithms (connectivity checks, alternate
// reordering backends) without hand-rolled traversal code.
package graph

import (
	"fmt"

	"github.com/cpmech/meshprep/csr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Category distinguishes directed from undirected adjacency. The adapter
// refuses to bridge the two (spec §4.7: "fails ... if asked to bridge
// directed and undirected categories").
type Category int

const (
	Undirected Category = iota
	Directed
)

// ToGonum converts a CSR adjacency list (vertex i's group lists its
// neighbors) into a gonum graph of the requested category. Edge
// multiplicity is deduplicated: gonum's simple graphs forbid parallel
// edges by construction.
func ToGonum(adjacency *csr.CSR, category Category) (graph.Graph, error) {
	switch category {
	case Undirected:
		g := simple.NewUndirectedGraph()
		addVertices(g, adjacency.Size())
		for u := 0; u < adjacency.Size(); u++ {
			for _, v := range adjacency.Group(u) {
				if u == v {
					continue
				}
				g.SetEdge(g.NewEdge(simple.Node(u), simple.Node(v)))
			}
		}
		return g, nil
	case Directed:
		g := simple.NewDirectedGraph()
		addVerticesDirected(g, adjacency.Size())
		for u := 0; u < adjacency.Size(); u++ {
			for _, v := range adjacency.Group(u) {
				if u == v {
					continue
				}
				g.SetEdge(g.NewEdge(simple.Node(u), simple.Node(v)))
			}
		}
		return g, nil
	default:
		return nil, fmt.Errorf("graph: unknown category %d", category)
	}
}

func addVertices(g *simple.UndirectedGraph, n int) {
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
}

func addVerticesDirected(g *simple.DirectedGraph, n int) {
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
}

// Canonicalize bridges adjacency through gonum's undirected graph type and
// back (spec §4.7: "and back for reverse"), rejecting anything ToGonum
// rejects and stripping self-loops along the way. Used ahead of the
// reordering oracle to hand it the dedup-by-construction, self-loop-free
// graph representation the oracle's contract assumes (spec §6: "an
// undirected, symmetric CSR graph").
func Canonicalize(adjacency *csr.CSR) (*csr.CSR, error) {
	g, err := ToGonum(adjacency, Undirected)
	if err != nil {
		return nil, err
	}
	ug, ok := g.(graph.Undirected)
	if !ok {
		return nil, fmt.Errorf("graph: gonum graph does not implement Undirected")
	}
	return FromGonum(ug, adjacency.Size()), nil
}

// FromGonum converts an undirected gonum graph back into a CSR adjacency
// list over vertex ids [0..n). It rejects any graph that is not the
// Undirected category this package produced — bridging a directed graph
// back through this path would silently discard edge direction.
func FromGonum(g graph.Undirected, n int) *csr.CSR {
	c := csr.New()
	for u := 0; u < n; u++ {
		var row []int
		it := g.From(int64(u))
		for it.Next() {
			row = append(row, int(it.Node().ID()))
		}
		c.PushBack(row)
	}
	return c
}
