package etype

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every sub-entity's canonical local-vertex list must fingerprint back to
// its own local index — this is the contract §4.2 pins down, not merely a
// suggestion, so the test iterates every declared type and sub-entity.
func TestFingerprintRoundTrip(t *testing.T) {
	types := []Type{Line, Triangle, Quadrangle, Tetrahedron, Prism, Pyramid, Hexahedron}
	for _, ty := range types {
		for i := 0; i < NumSubentities(ty); i++ {
			verts := append([]int(nil), SubentityLocalVerts(ty, i)...)
			sort.Ints(verts)
			got := Fingerprint(ty, verts)
			assert.Equalf(t, i, got, "type=%v subentity=%d verts=%v", ty, i, verts)
		}
	}
}

func TestNumVerticesAndDim(t *testing.T) {
	cases := []struct {
		ty   Type
		nv   int
		dim  int
	}{
		{Vertex, 1, 0},
		{Line, 2, 1},
		{Triangle, 3, 2},
		{Quadrangle, 4, 2},
		{Tetrahedron, 4, 3},
		{Hexahedron, 8, 3},
		{Prism, 6, 3},
		{Pyramid, 5, 3},
		{IGA2, 27, 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.nv, NumVertices(c.ty), c.ty.String())
		assert.Equal(t, c.dim, TopologicalDim(c.ty), c.ty.String())
	}
}

func TestByVertexCount(t *testing.T) {
	assert.Equal(t, Tetrahedron, ByVertexCount(3, 4))
	assert.Equal(t, Pyramid, ByVertexCount(3, 5))
	assert.Equal(t, Prism, ByVertexCount(3, 6))
	assert.Equal(t, Hexahedron, ByVertexCount(3, 8))
	assert.Equal(t, IGA2, ByVertexCount(3, 27))
	assert.Equal(t, Triangle, ByVertexCount(2, 3))
	assert.Equal(t, Quadrangle, ByVertexCount(2, 4))
}

func TestPrimeAndSecondaryTypes(t *testing.T) {
	assert.Equal(t, []Type{Triangle, Quadrangle}, PrimeTypes(2))
	assert.Equal(t, []Type{Line}, SecondaryTypes(2))
	assert.Equal(t, []Type{Tetrahedron, Hexahedron, Prism, Pyramid, IGA2}, PrimeTypes(3))
	assert.Equal(t, []Type{Triangle, Quadrangle}, SecondaryTypes(3))
}
