//go:build !metis

// Package metis binds the external METIS graph-partitioning oracle (spec
// §6). The default build carries no cgo dependency on libmetis; build
// with -tags metis (and a libmetis install) to get the real binding in
// metis_cgo.go. Without that tag, every call fails fast with
// OracleFailure, which is itself spec-compliant: §7 declares
// OracleFailure fatal with no retry, so a missing oracle and a failing
// oracle are indistinguishable to the rest of the pipeline.
package metis

import (
	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/errs"
	"github.com/cpmech/meshprep/oracle"
)

// Unavailable is an oracle.Partitioner that always fails. It satisfies the
// interface so the core can be built, linked, and tested without libmetis
// present.
type Unavailable struct{}

// New returns the default-build partitioner stub.
func New() *Unavailable {
	return &Unavailable{}
}

func (Unavailable) Partition(elements *csr.CSR, numNodes, nparts int, opts oracle.PartitionOptions) (oracle.PartitionResult, error) {
	return oracle.PartitionResult{}, errs.New(errs.OracleFailure,
		"metis: built without the 'metis' tag; no partitioning oracle is linked")
}
