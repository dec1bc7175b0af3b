// Package part drives the partitioning oracle and holds per-rank element
// and owned-node assignments (spec §4.5, "Partitioning state").
package part

import (
	"sort"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/logx"
	"github.com/cpmech/meshprep/mesh"
	"github.com/cpmech/meshprep/oracle"
)

// State holds element_attribution and node_attribution: group r lists the
// global prime-cell indices, respectively owned nodes, of rank r.
type State struct {
	ElementAttribution *csr.CSR
	NodeAttribution    *csr.CSR
}

// Partitioner runs metis(P) against a mesh's prime cells.
type Partitioner struct {
	mesh     *mesh.Mesh
	oracle   oracle.Partitioner
	log      logx.Logger
	numNodes int
}

// NewPartitioner returns a partitioner for m using the given oracle
// binding. log may be nil.
func NewPartitioner(m *mesh.Mesh, o oracle.Partitioner, log logx.Logger) *Partitioner {
	if log == nil {
		log = logx.Null{}
	}
	return &Partitioner{mesh: m, oracle: o, log: log, numNodes: m.NumNodes()}
}

// Metis runs the partitioner for P ranks. P<2 assigns every prime element
// and every node to rank 0 without consulting the oracle (spec §4.5).
func (p *Partitioner) Metis(numParts int) (*State, error) {
	D := p.mesh.D
	primeElements := p.mesh.ElementsOfDim(D)
	ne := primeElements.Size()

	if numParts < 2 {
		p.log.Info("part: P<2, single-rank fallback (%d elements, %d nodes)", ne, p.numNodes)
		return p.singleRank(ne), nil
	}

	opts := oracle.DefaultPartitionOptions()
	result, err := p.oracle.Partition(primeElements, p.numNodes, numParts, opts)
	if err != nil {
		p.log.Error("part: partitioning oracle failed: %v", err)
		return nil, err
	}

	state := &State{
		ElementAttribution: binAscending(result.EPart, numParts),
		NodeAttribution:    binAscending(result.NPart, numParts),
	}
	p.log.Info("part: partitioned %d elements, %d nodes into %d ranks", ne, p.numNodes, numParts)
	return state, nil
}

func (p *Partitioner) singleRank(ne int) *State {
	elems := make([]int, ne)
	for i := range elems {
		elems[i] = i
	}
	nodes := make([]int, p.numNodes)
	for i := range nodes {
		nodes[i] = i
	}
	ea := csr.New()
	ea.PushBack(elems)
	na := csr.New()
	na.PushBack(nodes)
	return &State{ElementAttribution: ea, NodeAttribution: na}
}

// binAscending groups global indices by their assigned rank, each group in
// ascending global-index order (spec §4.5).
func binAscending(assignment []int, numParts int) *csr.CSR {
	buckets := make([][]int, numParts)
	for idx, rank := range assignment {
		buckets[rank] = append(buckets[rank], idx)
	}
	c := csr.New()
	for _, b := range buckets {
		sort.Ints(b)
		c.PushBack(b)
	}
	return c
}
