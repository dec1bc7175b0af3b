//go:build metis

package metis

/*
#cgo LDFLAGS: -lmetis
#include <metis.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/errs"
	"github.com/cpmech/meshprep/oracle"
)

// CGO is the real METIS binding, built only with -tags metis against a
// libmetis install. It drives METIS_PartMeshDual with the option block
// spec §4.5 pins bit-exact.
type CGO struct{}

// New returns the cgo-backed partitioner.
func New() *CGO {
	return &CGO{}
}

func (CGO) Partition(elements *csr.CSR, numNodes, nparts int, opts oracle.PartitionOptions) (oracle.PartitionResult, error) {
	ne := C.idx_t(elements.Size())
	nn := C.idx_t(numNodes)
	ncommon := C.idx_t(opts.NCommon)
	nparts_ := C.idx_t(nparts)

	eptr := toIdxSlice(elements.Offset())
	eind := toIdxSlice(elements.Data())

	var objval C.idx_t
	epart := make([]C.idx_t, elements.Size())
	npart := make([]C.idx_t, numNodes)

	var metisOpts [C.METIS_NOPTIONS]C.idx_t
	C.METIS_SetDefaultOptions(&metisOpts[0])
	metisOpts[C.METIS_OPTION_OBJTYPE] = C.METIS_OBJTYPE_CUT
	metisOpts[C.METIS_OPTION_CTYPE] = C.METIS_CTYPE_SHEM
	metisOpts[C.METIS_OPTION_IPTYPE] = C.METIS_IPTYPE_GROW
	metisOpts[C.METIS_OPTION_NITER] = C.idx_t(opts.NIter)
	metisOpts[C.METIS_OPTION_NCUTS] = C.idx_t(opts.NCuts)

	status := C.METIS_PartMeshDual(
		&ne, &nn,
		(*C.idx_t)(unsafe.Pointer(&eptr[0])),
		(*C.idx_t)(unsafe.Pointer(&eind[0])),
		nil, nil,
		&ncommon, &nparts_,
		nil, &metisOpts[0],
		&objval,
		(*C.idx_t)(unsafe.Pointer(&epart[0])),
		(*C.idx_t)(unsafe.Pointer(&npart[0])),
	)
	if status != C.METIS_OK {
		return oracle.PartitionResult{}, errs.New(errs.OracleFailure, "metis: PartMeshDual returned non-OK status")
	}

	return oracle.PartitionResult{
		EPart: fromIdxSlice(epart),
		NPart: fromIdxSlice(npart),
	}, nil
}

func toIdxSlice(s []int) []C.idx_t {
	out := make([]C.idx_t, len(s))
	for i, v := range s {
		out[i] = C.idx_t(v)
	}
	return out
}

func fromIdxSlice(s []C.idx_t) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}
