// Package local builds, per rank, the local node/element/adjacency
// bundles consumed by the output writer (spec §4.6).
package local

import (
	"sort"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/errs"
	"github.com/cpmech/meshprep/graph"
	"github.com/cpmech/meshprep/logx"
	"github.com/cpmech/meshprep/mesh"
	"github.com/cpmech/meshprep/oracle"
	"github.com/cpmech/meshprep/part"
)

// Bundle is the per-rank output of local_mesh_data: the local vertex list
// (by global id, already ghost-last ordered), local element connectivity
// (local indices), local adjacency (local indices), a parallel ghost mask,
// and the owned-vertex count.
type Bundle struct {
	NodesG2L       []int // global id of local index i, i.e. L after permutation
	LocalElements  *csr.CSR
	LocalAdjacency *csr.CSR
	GhostMask      []int
	NumOwned       int
}

// Builder produces local mesh bundles from a finalized mesh, its global
// vertex adjacency (from topo.Builder.AdjacentVertices), and partitioning
// state.
type Builder struct {
	mesh      *mesh.Mesh
	adjacency *csr.CSR
	state     *part.State
	reorderer oracle.Reorderer
	log       logx.Logger
}

// NewBuilder returns a local-mesh builder. log may be nil.
func NewBuilder(m *mesh.Mesh, globalAdjacency *csr.CSR, state *part.State, reorderer oracle.Reorderer, log logx.Logger) *Builder {
	if log == nil {
		log = logx.Null{}
	}
	return &Builder{mesh: m, adjacency: globalAdjacency, state: state, reorderer: reorderer, log: log}
}

// LocalMeshData implements spec §4.6 steps 1-6 for one rank.
func (b *Builder) LocalMeshData(rank int) (*Bundle, error) {
	D := b.mesh.D
	primeElements := b.mesh.ElementsOfDim(D)
	elemIdx := b.state.ElementAttribution.Group(rank)
	owned := toSet(b.state.NodeAttribution.Group(rank))

	// 1. collect local nodes
	L, g2l := collectNodes(primeElements, elemIdx)

	// 2. build local elements (local indices)
	localElements := translateElements(primeElements, elemIdx, g2l)

	// 3. ghost mask
	ghost := make([]int, len(L))
	numOwned := 0
	for i, v := range L {
		if owned[v] {
			numOwned++
		} else {
			ghost[i] = 1
		}
	}

	// 4. bandwidth reduction over the graph induced by local_elements,
	// bridged through the gonum graph adapter (spec §4.7) so the reorder
	// oracle always receives the dedup'd, self-loop-free representation
	// its contract assumes.
	induced := inducedGraph(localElements, len(L))
	canonical, err := graph.Canonicalize(induced)
	if err != nil {
		return nil, errs.Wrap(errs.ConsistencyViolation, "local: bridge induced graph through gonum", err)
	}
	pi, err := b.reorderer.Reorder(canonical)
	if err != nil {
		b.log.Error("local: reorder oracle failed for rank %d: %v", rank, err)
		return nil, err
	}
	if pi == nil {
		pi = identityPerm(len(L))
	}

	// 5. ghost-last composition
	piPrime := ghostLastCompose(pi, ghost, len(L))

	// 6. emit
	newL := make([]int, len(L))
	newGhost := make([]int, len(L))
	for i, v := range L {
		newL[piPrime[i]] = v
		newGhost[piPrime[i]] = ghost[i]
	}
	permutedElements := permuteElementVertices(localElements, piPrime)
	localAdjacency := restrictAndPermuteAdjacency(b.adjacency, L, g2l, piPrime)

	b.log.Info("local: rank %d: %d local nodes, %d owned, %d elements", rank, len(L), numOwned, len(elemIdx))
	return &Bundle{
		NodesG2L:       newL,
		LocalElements:  permutedElements,
		LocalAdjacency: localAdjacency,
		GhostMask:      newGhost,
		NumOwned:       numOwned,
	}, nil
}

func toSet(vals []int) map[int]bool {
	s := make(map[int]bool, len(vals))
	for _, v := range vals {
		s[v] = true
	}
	return s
}

// collectNodes returns L (sorted, deduplicated global vertex ids
// referenced by elemIdx's cells) and the global->local map.
func collectNodes(primeElements *csr.CSR, elemIdx []int) ([]int, map[int]int) {
	seen := map[int]bool{}
	var L []int
	for _, e := range elemIdx {
		for _, v := range primeElements.Group(e) {
			if !seen[v] {
				seen[v] = true
				L = append(L, v)
			}
		}
	}
	sort.Ints(L)
	g2l := make(map[int]int, len(L))
	for i, v := range L {
		g2l[v] = i
	}
	return L, g2l
}

func translateElements(primeElements *csr.CSR, elemIdx []int, g2l map[int]int) *csr.CSR {
	c := csr.New()
	for _, e := range elemIdx {
		verts := primeElements.Group(e)
		row := make([]int, len(verts))
		for i, v := range verts {
			row[i] = g2l[v]
		}
		c.PushBack(row)
	}
	return c
}

// inducedGraph builds the symmetric vertex-vertex graph where two local
// vertices are adjacent iff they co-occur in at least one local cell.
func inducedGraph(localElements *csr.CSR, n int) *csr.CSR {
	buckets := make([][]int, n)
	for c := 0; c < localElements.Size(); c++ {
		verts := localElements.Group(c)
		for _, v := range verts {
			buckets[v] = append(buckets[v], verts...)
		}
	}
	g := csr.New()
	for _, b := range buckets {
		sort.Ints(b)
		g.PushBack(dedupSorted(b))
	}
	return g
}

func dedupSorted(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func identityPerm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// ghostLastCompose forms pi' via the canonical add-|L|-then-rank variant
// (spec §9 Open Question (c)): pi'[i] = pi[i] + n*ghost[i], then compact by
// stable ranking. Owned vertices (ghost=0) always rank below ghosts
// (ghost=1), and relative order within each class follows pi.
func ghostLastCompose(pi, ghost []int, n int) []int {
	raw := make([]int, n)
	for i := range raw {
		raw[i] = pi[i] + n*ghost[i]
	}
	idx := identityPerm(n)
	sort.SliceStable(idx, func(a, b int) bool {
		return raw[idx[a]] < raw[idx[b]]
	})
	piPrime := make([]int, n)
	for rank, i := range idx {
		piPrime[i] = rank
	}
	return piPrime
}

// permuteElementVertices rewrites every vertex index v inside elements as
// piPrime[v].
func permuteElementVertices(elements *csr.CSR, piPrime []int) *csr.CSR {
	data := elements.Data()
	newData := make([]int, len(data))
	for i, v := range data {
		newData[i] = piPrime[v]
	}
	newOffset := append([]int(nil), elements.Offset()...)
	return csr.From(newData, newOffset)
}

// restrictAndPermuteAdjacency builds local_adjacency by restricting the
// global vertex adjacency to L and relabeling/permuting through g2l and
// piPrime (spec §4.6 step 6).
func restrictAndPermuteAdjacency(globalAdj *csr.CSR, L []int, g2l map[int]int, piPrime []int) *csr.CSR {
	n := len(L)
	rows := make([][]int, n)
	for oldLocal, globalV := range L {
		var neighbors []int
		for _, gn := range globalAdj.Group(globalV) {
			if ln, ok := g2l[gn]; ok {
				neighbors = append(neighbors, piPrime[ln])
			}
		}
		sort.Ints(neighbors)
		rows[piPrime[oldLocal]] = dedupSorted(neighbors)
	}
	c := csr.New()
	for _, r := range rows {
		c.PushBack(r)
	}
	return c
}
