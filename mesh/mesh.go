// Package mesh holds the mesh container (spec §3/§4.3): node coordinates,
// one CSR of element connectivity holding every element type back-to-back
// in canonical order, a parallel element-ID vector, and the type-offset
// index used to recover each type's contiguous slice.
package mesh

import (
	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/etype"
)

// Mesh is populated once by a reader and is immutable thereafter; the
// topology builder and partitioner only ever hold a *Mesh to read from.
type Mesh struct {
	D int // geometric dimension, in {1,2,3}

	nodes []float64 // flattened coordinates: x0,y0,[z0,]x1,y1,...

	conn       *csr.CSR // all elements of all types, back-to-back
	elementID  []int    // generator-assigned tag, parallel to conn's groups
	typeOffset []int    // len(types)+1; block for types[k] is conn groups [typeOffset[k], typeOffset[k+1])
	types      []etype.Type
}

// New returns an empty mesh for geometric dimension d. Callers populate it
// via a reader (meshio) and then call Finalize once.
func New(d int) *Mesh {
	return &Mesh{
		D:     d,
		conn:  csr.New(),
		types: etype.AllTypes(d),
	}
}

// NumNodes returns the vertex count (len(nodes)/D).
func (m *Mesh) NumNodes() int {
	if m.D == 0 {
		return 0
	}
	return len(m.nodes) / m.D
}

// Nodes returns the flattened node coordinates.
func (m *Mesh) Nodes() []float64 {
	return m.nodes
}

// SetNodes installs the flattened node coordinate slice. Called once by a
// reader.
func (m *Mesh) SetNodes(nodes []float64) {
	m.nodes = nodes
}

// NodeCoord returns vertex i's coordinates as a D-length slice view.
func (m *Mesh) NodeCoord(i int) []float64 {
	return m.nodes[i*m.D : (i+1)*m.D]
}

// Types returns the element types this mesh carries blocks for, in
// canonical order (Vertex first).
func (m *Mesh) Types() []etype.Type {
	return m.types
}

// Block is a builder-facing accumulator for one element type's cells
// before they are folded into the mesh's single combined CSR.
type Block struct {
	Conn *csr.CSR
	ID   []int
}

// NewBlock returns an empty per-type block accumulator.
func NewBlock() *Block {
	return &Block{Conn: csr.New()}
}

// Finalize concatenates per-type blocks (in canonical type order, vertex
// block synthesized if absent) into the mesh's combined CSR and builds
// type_offset. Called once by a reader after all blocks are populated.
func (m *Mesh) Finalize(blocks map[etype.Type]*Block) {
	if blocks[etype.Vertex] == nil {
		blocks[etype.Vertex] = m.synthesizeVertexBlock()
	}
	m.typeOffset = make([]int, 0, len(m.types)+1)
	m.typeOffset = append(m.typeOffset, 0)
	for _, t := range m.types {
		b := blocks[t]
		if b == nil {
			b = NewBlock()
		}
		m.conn.Concat(b.Conn)
		m.elementID = append(m.elementID, b.ID...)
		m.typeOffset = append(m.typeOffset, m.conn.Size())
	}
}

// synthesizeVertexBlock builds the Vertex block: one single-vertex group
// per node, connectivity {i}, ID 0 — used when the generator omits point
// elements (spec §3/§4.3).
func (m *Mesh) synthesizeVertexBlock() *Block {
	b := NewBlock()
	n := m.NumNodes()
	data := make([]int, n)
	offset := make([]int, n+1)
	for i := 0; i < n; i++ {
		data[i] = i
		offset[i+1] = i + 1
	}
	b.Conn = csr.From(data, offset)
	b.ID = make([]int, n)
	return b
}

// Elements returns the combined connectivity CSR and parallel ID slice for
// every element of every type.
func (m *Mesh) Elements() (*csr.CSR, []int) {
	return m.conn, m.elementID
}

// typeIndex returns t's position within m.types, or -1.
func (m *Mesh) typeIndex(t etype.Type) int {
	for i, ty := range m.types {
		if ty == t {
			return i
		}
	}
	return -1
}

// ElementsOfType returns the contiguous connectivity slice and parallel ID
// slice for element type t, via type_offset.
func (m *Mesh) ElementsOfType(t etype.Type) (*csr.CSR, []int) {
	idx := m.typeIndex(t)
	if idx < 0 {
		return csr.New(), nil
	}
	return m.blockAt(idx)
}

// ElementsOfDim returns the concatenation of every type's block whose
// topological dimension equals dim.
func (m *Mesh) ElementsOfDim(dim int) *csr.CSR {
	conn, _ := m.ElementsAndIDsOfDim(dim)
	return conn
}

// ElementsAndIDsOfDim is ElementsOfDim plus the parallel element-ID slice,
// used by the output writer for the /prime and /secondary artefacts
// (spec §6).
func (m *Mesh) ElementsAndIDsOfDim(dim int) (*csr.CSR, []int) {
	result := csr.New()
	var ids []int
	for i, t := range m.types {
		if etype.TopologicalDim(t) != dim {
			continue
		}
		block, blockIDs := m.blockAt(i)
		result.Concat(block)
		ids = append(ids, blockIDs...)
	}
	return result, ids
}

func (m *Mesh) blockAt(idx int) (*csr.CSR, []int) {
	start, end := m.typeOffset[idx], m.typeOffset[idx+1]
	data := m.conn.Data()
	offset := m.conn.Offset()
	subOffset := make([]int, end-start+1)
	base := offset[start]
	for i := start; i <= end; i++ {
		subOffset[i-start] = offset[i] - base
	}
	subData := data[base:offset[end]]
	return csr.From(subData, subOffset), m.elementID[start:end]
}

// TypeOffset returns the raw type-offset index.
func (m *Mesh) TypeOffset() []int {
	return m.typeOffset
}
