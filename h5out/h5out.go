// Package h5out writes the per-run output file described by spec §6: a
// hierarchical binary layout of node coordinates, global prime/secondary
// element tables, and one group per rank of local mesh data. The concrete
// backend is gosl's io/h5 (cgo HDF5 binding); Write is expressed against
// the small Sink interface so it can be exercised without libhdf5.
package h5out

import (
	"fmt"

	"github.com/cpmech/gosl/io/h5"
	"github.com/cpmech/meshprep/csr"
	"github.com/cpmech/meshprep/local"
	"github.com/cpmech/meshprep/mesh"
)

// Sink is the minimal write surface Write needs: packed float64 arrays and
// packed int arrays at a hierarchical path.
type Sink interface {
	PutArray(path string, v []float64) error
	PutInts(path string, v []int) error
}

// FileSink adapts gosl's io/h5 File to Sink.
type FileSink struct {
	file *h5.File
}

// Create opens filename for writing via gosl/io/h5.
func Create(filename string) (*FileSink, error) {
	f, err := h5.Create(filename)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f}, nil
}

// Close flushes and closes the underlying HDF5 file.
func (s *FileSink) Close() error {
	return s.file.Close()
}

func (s *FileSink) PutArray(path string, v []float64) error {
	return s.file.PutArray(path, v)
}

func (s *FileSink) PutInts(path string, v []int) error {
	return s.file.PutInts(path, v)
}

// Write emits the full layout: global node/prime/secondary artefacts and
// one per-rank group, in the path convention spec §6 fixes.
func Write(sink Sink, m *mesh.Mesh, primeElements, secondaryElements *csr.CSR, primeIDs, secondaryIDs []int, bundles []*local.Bundle) error {
	if err := sink.PutArray("/node/vector/0", m.Nodes()); err != nil {
		return err
	}
	if err := putCSR(sink, "/prime/element/csrlist", primeElements); err != nil {
		return err
	}
	if err := sink.PutInts("/prime/ID/vector/0", primeIDs); err != nil {
		return err
	}
	if err := putCSR(sink, "/secondary/element/csrlist", secondaryElements); err != nil {
		return err
	}
	if err := sink.PutInts("/secondary/ID/vector/0", secondaryIDs); err != nil {
		return err
	}

	for r, b := range bundles {
		prefix := fmt.Sprintf("/rank/%d", r)
		if err := sink.PutInts(prefix+"/nodes_g2l", b.NodesG2L); err != nil {
			return err
		}
		if err := putCSR(sink, prefix+"/local_elements", b.LocalElements); err != nil {
			return err
		}
		if err := putCSR(sink, prefix+"/local_adjacency", b.LocalAdjacency); err != nil {
			return err
		}
		if err := sink.PutInts(prefix+"/ghost_mask", b.GhostMask); err != nil {
			return err
		}
		if err := sink.PutInts(prefix+"/num_owned/scalar/0", []int{b.NumOwned}); err != nil {
			return err
		}
	}
	return nil
}

func putCSR(sink Sink, prefix string, c *csr.CSR) error {
	if err := sink.PutInts(prefix+"/data", c.Data()); err != nil {
		return err
	}
	return sink.PutInts(prefix+"/offset", c.Offset())
}
