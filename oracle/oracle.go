// Package oracle declares the two external collaborator contracts the core
// consumes but never implements itself (spec §1, §6): the graph-partitioning
// oracle and the bandwidth-reduction oracle. Concrete bindings live in
// meshprep/metis (cgo, build-tag gated) and meshprep/reorder.
package oracle

import "github.com/cpmech/meshprep/csr"

// PartitionOptions mirrors the METIS option block bit-exact with spec
// §4.5: ncommon=1, objective=edge-cut, method=k-way, ctype=SHEM,
// iptype=GROW, niter=10, ncuts=1.
type PartitionOptions struct {
	NCommon   int
	Objective string
	Method    string
	CType     string
	IPType    string
	NIter     int
	NCuts     int
}

// DefaultPartitionOptions returns the bit-exact option block spec §4.5
// requires for every partition call.
func DefaultPartitionOptions() PartitionOptions {
	return PartitionOptions{
		NCommon:   1,
		Objective: "edge-cut",
		Method:    "k-way",
		CType:     "SHEM",
		IPType:    "GROW",
		NIter:     10,
		NCuts:     1,
	}
}

// PartitionResult carries the oracle's rank assignment for every prime
// element and every node.
type PartitionResult struct {
	EPart []int // len = number of prime elements
	NPart []int // len = number of nodes
}

// Partitioner takes the prime-element CSR (eptr/eind, expressed as a
// csr.CSR) and returns a rank assignment for nparts ranks, or a non-nil
// error (always fatal per spec §7 OracleFailure) on any non-OK status.
type Partitioner interface {
	Partition(elements *csr.CSR, numNodes, nparts int, opts PartitionOptions) (PartitionResult, error)
}

// Reorderer takes an undirected, symmetric CSR graph with V vertices and
// returns a permutation of [0..V) that reduces bandwidth (spec §6). The
// core only assumes the return is a valid permutation that never increases
// bandwidth relative to identity.
type Reorderer interface {
	Reorder(graph *csr.CSR) ([]int, error)
}
