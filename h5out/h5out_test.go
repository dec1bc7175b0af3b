package h5out

import (
	"testing"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/local"
	"github.com/cpmech/meshprep/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every write for assertion, standing in for the
// real HDF5-backed FileSink in tests.
type recordingSink struct {
	arrays map[string][]float64
	ints   map[string][]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{arrays: map[string][]float64{}, ints: map[string][]int{}}
}

func (s *recordingSink) PutArray(path string, v []float64) error {
	s.arrays[path] = v
	return nil
}

func (s *recordingSink) PutInts(path string, v []int) error {
	s.ints[path] = v
	return nil
}

func TestWriteGlobalLayout(t *testing.T) {
	m := mesh.New(2)
	m.SetNodes([]float64{0, 0, 1, 0, 1, 1})

	prime := csr.From([]int{0, 1, 2}, []int{0, 3})
	secondary := csr.From([]int{0, 1}, []int{0, 2})

	sink := newRecordingSink()
	err := Write(sink, m, prime, secondary, []int{5}, []int{9}, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 1, 0, 1, 1}, sink.arrays["/node/vector/0"])
	assert.Equal(t, []int{0, 1, 2}, sink.ints["/prime/element/csrlist/data"])
	assert.Equal(t, []int{0, 3}, sink.ints["/prime/element/csrlist/offset"])
	assert.Equal(t, []int{5}, sink.ints["/prime/ID/vector/0"])
	assert.Equal(t, []int{0, 1}, sink.ints["/secondary/element/csrlist/data"])
	assert.Equal(t, []int{9}, sink.ints["/secondary/ID/vector/0"])
}

func TestWritePerRankGroups(t *testing.T) {
	m := mesh.New(2)
	m.SetNodes([]float64{0, 0, 1, 0})
	prime := csr.New()
	secondary := csr.New()

	bundles := []*local.Bundle{
		{
			NodesG2L:       []int{2, 5},
			LocalElements:  csr.From([]int{0, 1}, []int{0, 2}),
			LocalAdjacency: csr.From([]int{1, 0}, []int{0, 1, 2}),
			GhostMask:      []int{0, 1},
			NumOwned:       1,
		},
	}

	sink := newRecordingSink()
	err := Write(sink, m, prime, secondary, nil, nil, bundles)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5}, sink.ints["/rank/0/nodes_g2l"])
	assert.Equal(t, []int{0, 1}, sink.ints["/rank/0/local_elements/data"])
	assert.Equal(t, []int{0, 1}, sink.ints["/rank/0/ghost_mask"])
	assert.Equal(t, []int{1}, sink.ints["/rank/0/num_owned/scalar/0"])
}
