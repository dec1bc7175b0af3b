package topo

import (
	"testing"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/etype"
	"github.com/cpmech/meshprep/logx"
	"github.com/cpmech/meshprep/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTriangles builds a 2D mesh of two triangles sharing an edge:
//
//	3---2
//	|  /|
//	| / |
//	|/  |
//	0---1
//
// triangle A = (0,1,2), triangle B = (0,2,3). The shared edge (0,2) is
// declared as a Line element, since dim-1 entities come only from the
// elements the mesh declares.
func twoTriangles(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New(2)
	m.SetNodes([]float64{0, 0, 1, 0, 1, 1, 0, 1})
	tri := mesh.NewBlock()
	tri.Conn = csr.From([]int{0, 1, 2, 0, 2, 3}, []int{0, 3, 6})
	tri.ID = []int{0, 1}
	line := mesh.NewBlock()
	line.Conn = csr.From([]int{0, 2}, []int{0, 2})
	line.ID = []int{0}
	m.Finalize(map[etype.Type]*mesh.Block{etype.Triangle: tri, etype.Line: line})
	return m
}

func TestVertexToCellIncidence(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	vertexToCell := b.Connectivity(0, 2)
	require.Equal(t, 4, vertexToCell.Size())
	assert.ElementsMatch(t, []int{0, 1}, vertexToCell.Group(0)) // vertex 0 shared by both
	assert.ElementsMatch(t, []int{0}, vertexToCell.Group(1))
	assert.ElementsMatch(t, []int{0, 1}, vertexToCell.Group(2)) // vertex 2 shared by both
	assert.ElementsMatch(t, []int{1}, vertexToCell.Group(3))
}

func TestEdgeToCellIncidence(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	edgeToCell := b.Connectivity(1, 2)
	edgeToVertex := b.Connectivity(1, 0)
	require.Greater(t, edgeToCell.Size(), 0)

	// find the shared edge (0,2) and assert it touches both cells
	found := false
	for i := 0; i < edgeToVertex.Size(); i++ {
		verts := edgeToVertex.Group(i)
		if containsAll(verts, []int{0, 2}) {
			found = true
			assert.ElementsMatch(t, []int{0, 1}, edgeToCell.Group(i))
		}
	}
	assert.True(t, found, "shared edge (0,2) must exist")
}

func containsAll(haystack, needles []int) bool {
	set := map[int]bool{}
	for _, v := range haystack {
		set[v] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}

func TestVertexAdjacencyIncludesSelfAndNeighbors(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	adj := b.AdjacentVertices()
	require.Equal(t, 4, adj.Size())
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, adj.Group(0))
	assert.ElementsMatch(t, []int{0, 1, 2}, adj.Group(1))
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, adj.Group(2))
	assert.ElementsMatch(t, []int{0, 2, 3}, adj.Group(3))
}

func TestOrientationIndicesWithinTriangleEdgeRange(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	orient := b.Orientation()
	edgeToCell := b.Connectivity(1, 2)
	require.Equal(t, edgeToCell.Size(), orient.Size())
	for i := 0; i < orient.Size(); i++ {
		for _, o := range orient.Group(i) {
			assert.GreaterOrEqual(t, o, 0)
			assert.Less(t, o, 3) // triangle has 3 edges
		}
	}
}

func TestConnIdentityForEqualDims(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	id := b.Connectivity(2, 2)
	require.Equal(t, 2, id.Size())
	assert.Equal(t, []int{0}, id.Group(0))
	assert.Equal(t, []int{1}, id.Group(1))
}

func TestElementCollectionsByDimension(t *testing.T) {
	m := twoTriangles(t)
	b := NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())

	assert.Equal(t, 4, b.ElementCollections(0).Size())
	assert.Equal(t, 2, b.ElementCollections(2).Size())
}
