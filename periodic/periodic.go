// Package periodic reads the node-pair identification file named by the
// CLI's -p/--periodic flag (spec §6) and resolves chains of identified
// nodes to a single canonical representative via union-find.
package periodic

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/meshprep/errs"
)

// Pairs is a union-find over 0-based node indices: each line of the
// periodic file identifies a slave node with a master node, and chains of
// identification (a->b, b->c) collapse to one root.
type Pairs struct {
	parent map[int]int
}

// New returns an empty Pairs (Resolve is then the identity function).
func New() *Pairs {
	return &Pairs{parent: map[int]int{}}
}

// Read parses "<slave> <master>" integer pairs, one per line (blank lines
// and lines starting with # are skipped), and unions each pair.
func Read(r io.Reader) (*Pairs, error) {
	p := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errs.New(errs.InvalidInput, "periodic: malformed line "+strconv.Itoa(lineNo))
		}
		slave, err1 := strconv.Atoi(fields[0])
		master, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, errs.Wrap(errs.InvalidInput, "periodic: non-integer node id at line "+strconv.Itoa(lineNo), err1)
		}
		p.Union(slave, master)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.IOError, "periodic: read", err)
	}
	return p, nil
}

func (p *Pairs) find(v int) int {
	root, ok := p.parent[v]
	if !ok {
		return v
	}
	if root == v {
		return v
	}
	// path compression
	r := p.find(root)
	p.parent[v] = r
	return r
}

// Union identifies slave with master: Resolve(slave) == Resolve(master)
// afterwards.
func (p *Pairs) Union(slave, master int) {
	rs, rm := p.find(slave), p.find(master)
	if rs == rm {
		return
	}
	p.parent[rs] = rm
}

// Resolve returns v's canonical representative: v itself if it was never
// named in the periodic file.
func (p *Pairs) Resolve(v int) int {
	return p.find(v)
}
