// Package topo builds the full topology lattice of a mesh: the (d0,d1)
// incidence CSRs for every pair of dimensions 0..D, the vertex adjacency
// graph, and the sub-entity orientation table (spec §4.4).
package topo

import (
	"fmt"
	"sort"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/errs"
	"github.com/cpmech/meshprep/etype"
	"github.com/cpmech/meshprep/logx"
	"github.com/cpmech/meshprep/mesh"
)

type key struct{ d0, d1 int }

// Builder owns the topology lattice for one mesh. Created empty, populated
// by a single Init call, and immutable thereafter (spec §3 "Lifecycle").
type Builder struct {
	mesh *mesh.Mesh
	log  logx.Logger

	agg              []*csr.CSR // agg[d], d in 0..D
	conn             map[key]*csr.CSR
	adjacentVertices *csr.CSR
	orientation      *csr.CSR
}

// NewBuilder returns an empty builder over m. log may be nil, in which
// case a discarding logger is used.
func NewBuilder(m *mesh.Mesh, log logx.Logger) *Builder {
	if log == nil {
		log = logx.Null{}
	}
	return &Builder{mesh: m, log: log, conn: map[key]*csr.CSR{}}
}

// Init executes, in order: aggregation collection, pairwise incidence
// construction, vertex adjacency, and sub-entity orientation (spec §4.4).
// It returns an *errs.Error of kind ConsistencyViolation if the mesh data
// is internally inconsistent — the caller must abort immediately per §7.
func (b *Builder) Init() error {
	D := b.mesh.D
	b.agg = make([]*csr.CSR, D+1)
	for d := 0; d <= D; d++ {
		b.agg[d] = b.mesh.ElementsOfDim(d)
		b.log.Debug("topo: collected %d dim-%d entities", b.agg[d].Size(), d)
	}

	for i := 0; i <= D; i++ {
		for j := 0; j <= D; j++ {
			b.buildPair(j, i)
		}
	}
	b.log.Info("topo: built incidence lattice for D=%d", D)

	b.buildVertexAdjacency()
	b.log.Info("topo: built vertex adjacency (%d vertices)", b.adjacentVertices.Size())

	if err := b.buildOrientation(); err != nil {
		return err
	}
	b.log.Info("topo: built sub-entity orientation (%d sub-entities)", b.orientation.Size())
	return nil
}

// Connectivity returns conn(d0,d1): for each dimension-d0 entity, the
// dimension-d1 entities incident to it. conn(d,d) is the implicit
// identity relation.
func (b *Builder) Connectivity(d0, d1 int) *csr.CSR {
	if d0 == d1 {
		return identity(b.agg[d0].Size())
	}
	c, ok := b.conn[key{d0, d1}]
	if !ok {
		return csr.New()
	}
	return c
}

func identity(n int) *csr.CSR {
	c := csr.New()
	for i := 0; i < n; i++ {
		c.PushBack([]int{i})
	}
	return c
}

// ElementCollections returns agg[dim]: the concatenation of every element
// type's block at topological dimension dim.
func (b *Builder) ElementCollections(dim int) *csr.CSR {
	return b.agg[dim]
}

// AdjacentVertices lists, for each vertex, every vertex sharing at least
// one prime cell with it (the vertex appears in its own group).
func (b *Builder) AdjacentVertices() *csr.CSR {
	return b.adjacentVertices
}

// Orientation is indexed by (D-1)-entity and lists, for each cell incident
// to it, the local index that sub-entity occupies inside the cell.
func (b *Builder) Orientation() *csr.CSR {
	return b.orientation
}

// buildPair implements the recursive incidence construction rule of
// spec §4.4 step 2, ported from the original's
// _build_connectivity_pair/_construct_reverse_map.
func (b *Builder) buildPair(d0, d1 int) {
	if d0 == d1 {
		return
	}
	if c, ok := b.conn[key{d0, d1}]; ok && c.Size() != 0 {
		return
	}
	switch {
	case d0 == 0 || d1 == 0:
		sum := d0 + d1
		if c, ok := b.conn[key{sum, 0}]; !ok || c.Size() == 0 {
			b.conn[key{sum, 0}] = b.agg[sum]
		}
		if d0 < d1 {
			b.constructReverse(d1, d0)
		}
	case d0 > d1:
		b.buildPair(d1, d0)
		b.constructReverse(d1, d0)
	default: // 0 < d0 < d1
		b.buildPair(d0, 0)
		b.buildPair(0, d1)
		b.voteIncidence(d0, d1)
	}
}

// constructReverse builds conn[b,a] = conn[a,b].reverse(), padded to
// len(agg[b]), provided conn[a,b] exists and conn[b,a] doesn't yet.
func (b *Builder) constructReverse(a, bdim int) {
	src, ok := b.conn[key{a, bdim}]
	if !ok || src.Size() == 0 {
		return
	}
	if c, has := b.conn[key{bdim, a}]; has && c.Size() != 0 {
		return
	}
	rev := src.Reverse()
	rev.PadTo(b.agg[bdim].Size())
	b.conn[key{bdim, a}] = rev
}

// voteIncidence computes conn[d0,d1] for 0 < d0 < d1 via the
// shared-vertex-vote rule: a dim-d1 entity is incident to a dim-d0 entity e
// iff it contains every vertex of e.
func (b *Builder) voteIncidence(d0, d1 int) {
	dim0ToVertex, ok0 := b.conn[key{d0, 0}]
	vertexToDim1, ok1 := b.conn[key{0, d1}]
	if !ok0 || !ok1 || dim0ToVertex.Size() == 0 || vertexToDim1.Size() == 0 {
		return
	}
	result := csr.New()
	for e := 0; e < dim0ToVertex.Size(); e++ {
		verts := dim0ToVertex.Group(e)
		counter := map[int]int{}
		for _, v := range verts {
			for _, f := range vertexToDim1.Group(v) {
				counter[f]++
			}
		}
		keys := make([]int, 0, len(counter))
		for f := range counter {
			keys = append(keys, f)
		}
		sort.Ints(keys)
		var connected []int
		for _, f := range keys {
			if counter[f] == len(verts) {
				connected = append(connected, f)
			}
		}
		result.PushBack(connected)
	}
	b.conn[key{d0, d1}] = result
}

func (b *Builder) buildVertexAdjacency() {
	D := b.mesh.D
	nnode := b.mesh.NumNodes()
	const expectedBandwidth = 64
	buckets := make([][]int, nnode)
	for i := range buckets {
		buckets[i] = make([]int, 0, expectedBandwidth)
	}
	primeCells := b.agg[D]
	for c := 0; c < primeCells.Size(); c++ {
		verts := primeCells.Group(c)
		for _, v := range verts {
			buckets[v] = append(buckets[v], verts...)
		}
	}
	result := csr.New()
	for _, bucket := range buckets {
		sort.Ints(bucket)
		result.PushBack(dedup(bucket))
	}
	b.adjacentVertices = result
}

func dedup(s []int) []int {
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

// childIndicesInParent returns, for each vertex in child (in child's own
// order), its position within parent. Fails if any child vertex is absent
// from parent — a corrupt mesh, per spec §4.4 "Failure model".
func childIndicesInParent(child, parent []int) ([]int, bool) {
	indices := make([]int, 0, len(child))
	for _, c := range child {
		found := false
		for j, p := range parent {
			if p == c {
				indices = append(indices, j)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return indices, true
}

func (b *Builder) buildOrientation() error {
	D := b.mesh.D
	primeList := b.agg[D]
	secondaryList := b.agg[D-1]
	subentityToEntity := b.Connectivity(D-1, D)

	result := csr.New()
	for i := 0; i < subentityToEntity.Size(); i++ {
		subVerts := secondaryList.Group(i)
		cells := subentityToEntity.Group(i)
		row := make([]int, 0, len(cells))
		for _, c := range cells {
			parentVerts := primeList.Group(c)
			localIdx, ok := childIndicesInParent(subVerts, parentVerts)
			if !ok {
				b.log.Error("topo: sub-entity %d vertex not found in parent cell %d", i, c)
				return errs.New(errs.ConsistencyViolation,
					fmt.Sprintf("sub-entity %d has a vertex not present in parent cell %d", i, c))
			}
			sorted := append([]int(nil), localIdx...)
			sort.Ints(sorted)
			ty := etype.ByVertexCount(D, len(parentVerts))
			row = append(row, etype.Fingerprint(ty, sorted))
		}
		result.PushBack(row)
	}
	b.orientation = result
	return nil
}
