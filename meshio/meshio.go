// Package meshio reads the generator's native v2.2 ASCII mesh format
// (spec §6), the only input format the core requires. Output writing is
// handled by meshprep/h5out.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/meshprep/errs"
	"github.com/cpmech/meshprep/etype"
	"github.com/cpmech/meshprep/mesh"
)

const maxCoordsPerNode = 3

// typeByCode maps the generator's on-disk element-type integer to the
// internal taxonomy; the generator's numbering happens to equal
// etype.Type's own ordinal, grounded on the original's direct enum cast.
var typeByCode = map[int]etype.Type{
	0: etype.Vertex,
	1: etype.Line,
	2: etype.Triangle,
	3: etype.Quadrangle,
	4: etype.Tetrahedron,
	5: etype.Hexahedron,
	6: etype.Prism,
	7: etype.Pyramid,
	8: etype.IGA2,
}

type rawElement struct {
	ty       etype.Type
	id       int
	nodeList []int
}

// ReadGmsh22 parses the generator's v2.2 ASCII format from r into a new
// Mesh. The format itself carries no explicit geometric dimension (every
// node line carries an x,y,z triplet regardless); D is inferred as the
// maximum topological dimension among the element types actually present,
// per spec §9's "carry D as a runtime field" guidance. Versions 4.0/4.1
// are recognised in the header but unsupported, returning
// errs.InvalidInput (spec §6).
func ReadGmsh22(r io.Reader) (*mesh.Mesh, error) {
	lr := newLineReader(r)

	if _, err := lr.next(); err != nil { // "$MeshFormat"
		return nil, err
	}
	header, err := lr.next() // "<version> <filetype> <datasize>"
	if err != nil {
		return nil, err
	}
	version, err := parseVersion(header)
	if err != nil {
		return nil, err
	}
	switch {
	case nearly(version, 2.2):
		// supported, fall through
	case nearly(version, 4.0), nearly(version, 4.1):
		return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: gmsh version %.1f recognised but not implemented", version))
	default:
		return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: unknown mesh format version %.4f", version))
	}

	if _, err := lr.next(); err != nil { // "$EndMeshFormat"
		return nil, err
	}
	if _, err := lr.next(); err != nil { // "$Nodes"
		return nil, err
	}
	nnodesLine, err := lr.next()
	if err != nil {
		return nil, err
	}
	nnodes, err := strconv.Atoi(strings.TrimSpace(nnodesLine))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, "meshio: node count", err)
	}

	rawCoords := make([][maxCoordsPerNode]float64, nnodes)
	for i := 0; i < nnodes; i++ {
		line, err := lr.next()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 1+maxCoordsPerNode {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: malformed node line %d", lr.lineNo))
		}
		for k := 0; k < maxCoordsPerNode; k++ {
			v, err := strconv.ParseFloat(fields[1+k], 64)
			if err != nil {
				return nil, errs.Wrap(errs.InvalidInput, "meshio: node coordinate", err)
			}
			rawCoords[i][k] = v
		}
	}

	if _, err := lr.next(); err != nil { // "$EndNodes"
		return nil, err
	}
	if _, err := lr.next(); err != nil { // "$Elements"
		return nil, err
	}
	nelemLine, err := lr.next()
	if err != nil {
		return nil, err
	}
	nelem, err := strconv.Atoi(strings.TrimSpace(nelemLine))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, "meshio: element count", err)
	}

	elements := make([]rawElement, 0, nelem)
	maxDim := 0
	for i := 0; i < nelem; i++ {
		line, err := lr.next()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: malformed element line %d", lr.lineNo))
		}
		typeCode, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, "meshio: element type", err)
		}
		ty, ok := typeByCode[typeCode]
		if !ok {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: unknown element type code %d at line %d", typeCode, lr.lineNo))
		}
		numTags, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, "meshio: element tag count", err)
		}
		if len(fields) < 3+numTags {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: missing tags at line %d", lr.lineNo))
		}
		id := 0
		if numTags >= 2 {
			id, err = strconv.Atoi(fields[3+1]) // second tag
			if err != nil {
				return nil, errs.Wrap(errs.InvalidInput, "meshio: element id tag", err)
			}
		}

		nvtx := etype.NumVertices(ty)
		nodeFields := fields[3+numTags:]
		if len(nodeFields) != nvtx {
			return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: element of type %s expects %d nodes, got %d at line %d", ty, nvtx, len(nodeFields), lr.lineNo))
		}
		nodeList := make([]int, nvtx)
		for j, f := range nodeFields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errs.Wrap(errs.InvalidInput, "meshio: element node id", err)
			}
			nodeList[j] = v - 1 // 1-based -> 0-based
		}
		if ty == etype.Pyramid {
			nodeList[2], nodeList[3] = nodeList[3], nodeList[2]
		}

		if dim := etype.TopologicalDim(ty); dim > maxDim {
			maxDim = dim
		}
		elements = append(elements, rawElement{ty: ty, id: id, nodeList: nodeList})
	}

	d := maxDim
	if d < 1 {
		d = 1
	}
	if d > maxCoordsPerNode {
		return nil, errs.New(errs.InvalidInput, fmt.Sprintf("meshio: inferred geometric dimension %d out of range", d))
	}

	m := mesh.New(d)
	nodes := make([]float64, 0, nnodes*d)
	for _, c := range rawCoords {
		nodes = append(nodes, c[:d]...)
	}
	m.SetNodes(nodes)

	blocks := map[etype.Type]*mesh.Block{}
	for _, e := range elements {
		b, ok := blocks[e.ty]
		if !ok {
			b = mesh.NewBlock()
			blocks[e.ty] = b
		}
		b.Conn.PushBack(e.nodeList)
		b.ID = append(b.ID, e.id)
	}
	m.Finalize(blocks)
	return m, nil
}

func parseVersion(line string) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return 0, errs.New(errs.InvalidInput, "meshio: empty mesh format header")
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidInput, "meshio: mesh format version", err)
	}
	return v, nil
}

func nearly(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// lineReader reads lines one at a time as-is (no trimming, blank lines
// included), counting them. A premature EOF surfaces as InvalidInput naming
// the last line read, and a failure of the underlying reader as IOError,
// instead of a bare io.EOF bubbling out of strconv.
type lineReader struct {
	scanner *bufio.Scanner
	lineNo  int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", errs.Wrap(errs.IOError, "meshio: read", err)
		}
		return "", errs.New(errs.InvalidInput, fmt.Sprintf("meshio: unexpected end of file after line %d", lr.lineNo))
	}
	lr.lineNo++
	return lr.scanner.Text(), nil
}
