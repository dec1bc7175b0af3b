package local

import (
	"testing"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/etype"
	"github.com/cpmech/meshprep/logx"
	"github.com/cpmech/meshprep/mesh"
	"github.com/cpmech/meshprep/part"
	"github.com/cpmech/meshprep/topo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityReorderer returns pi[i]=i, isolating the ghost-last composition
// logic from the reorder oracle's own behavior.
type identityReorderer struct{}

func (identityReorderer) Reorder(g *csr.CSR) ([]int, error) {
	p := make([]int, g.Size())
	for i := range p {
		p[i] = i
	}
	return p, nil
}

// fourTriangleMesh builds the same two-rank mesh as part_test.go:
//
//	3---4---5
//	|\  |\  |
//	| \ | \ |
//	|  \|  \|
//	0---1---2
func fourTriangleMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New(2)
	m.SetNodes([]float64{0, 0, 1, 0, 2, 0, 0, 1, 1, 1, 2, 1})
	tri := mesh.NewBlock()
	tri.Conn = csr.From(
		[]int{0, 1, 3, 1, 4, 3, 1, 2, 4, 2, 5, 4},
		[]int{0, 3, 6, 9, 12},
	)
	tri.ID = []int{0, 1, 2, 3}
	m.Finalize(map[etype.Type]*mesh.Block{etype.Triangle: tri})
	return m
}

// twoRankState assigns elements {0,1} to rank 0 and {2,3} to rank 1, with
// node 1 and node 4 shared (ghosts) across the rank boundary.
func twoRankState() *part.State {
	ea := csr.New()
	ea.PushBack([]int{0, 1})
	ea.PushBack([]int{2, 3})
	na := csr.New()
	na.PushBack([]int{0, 1, 3, 4}) // rank 0 owns 0,1,3,4
	na.PushBack([]int{2, 5})       // rank 1 owns 2,5
	return &part.State{ElementAttribution: ea, NodeAttribution: na}
}

func globalAdjacency(t *testing.T, m *mesh.Mesh) *csr.CSR {
	t.Helper()
	b := topo.NewBuilder(m, logx.Null{})
	require.NoError(t, b.Init())
	return b.AdjacentVertices()
}

func TestLocalMeshDataGhostMaskAndOwnedCount(t *testing.T) {
	m := fourTriangleMesh(t)
	adj := globalAdjacency(t, m)
	state := twoRankState()
	builder := NewBuilder(m, adj, state, identityReorderer{}, logx.Null{})

	bundle, err := builder.LocalMeshData(1) // elements {2,3}: verts {1,2,4,5}
	require.NoError(t, err)

	// rank 1 local nodes: global {1,2,4,5}; rank1 owns {2,5}; ghosts {1,4}
	assert.Len(t, bundle.NodesG2L, 4)
	assert.Equal(t, 2, bundle.NumOwned)
	ownedGlobals := map[int]bool{}
	ghostGlobals := map[int]bool{}
	for i, g := range bundle.NodesG2L {
		if bundle.GhostMask[i] == 1 {
			ghostGlobals[g] = true
		} else {
			ownedGlobals[g] = true
		}
	}
	assert.Equal(t, map[int]bool{2: true, 5: true}, ownedGlobals)
	assert.Equal(t, map[int]bool{1: true, 4: true}, ghostGlobals)
}

func TestLocalMeshDataInvariantsAfterStep6(t *testing.T) {
	m := fourTriangleMesh(t)
	adj := globalAdjacency(t, m)
	state := twoRankState()
	builder := NewBuilder(m, adj, state, identityReorderer{}, logx.Null{})

	for rank := 0; rank < 2; rank++ {
		bundle, err := builder.LocalMeshData(rank)
		require.NoError(t, err)

		n := len(bundle.NodesG2L)
		for i := 0; i < n; i++ {
			if i < bundle.NumOwned {
				assert.Equal(t, 0, bundle.GhostMask[i], "position %d below numOwned must be owned", i)
			} else {
				assert.Equal(t, 1, bundle.GhostMask[i], "position %d at/above numOwned must be ghost", i)
			}
		}

		// local_elements references only [0, n)
		for c := 0; c < bundle.LocalElements.Size(); c++ {
			for _, v := range bundle.LocalElements.Group(c) {
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, n)
			}
		}

		// local adjacency is symmetric
		adjLocal := bundle.LocalAdjacency
		require.Equal(t, n, adjLocal.Size())
		for u := 0; u < n; u++ {
			for _, v := range adjLocal.Group(u) {
				assert.Contains(t, adjLocal.Group(v), u, "adjacency must be symmetric")
			}
		}
	}
}

func TestPartitionLocality(t *testing.T) {
	// spec §8 scenario 6: every non-ghost local index belongs to the
	// rank's node_attribution group; every ghost index does not.
	m := fourTriangleMesh(t)
	adj := globalAdjacency(t, m)
	state := twoRankState()
	builder := NewBuilder(m, adj, state, identityReorderer{}, logx.Null{})

	for rank := 0; rank < 2; rank++ {
		bundle, err := builder.LocalMeshData(rank)
		require.NoError(t, err)
		owned := toSet(state.NodeAttribution.Group(rank))

		for i, g := range bundle.NodesG2L {
			if i < bundle.NumOwned {
				assert.True(t, owned[g], "rank %d position %d (global %d) should be owned", rank, i, g)
			} else {
				assert.False(t, owned[g], "rank %d position %d (global %d) should not be owned", rank, i, g)
			}
		}
	}
}
