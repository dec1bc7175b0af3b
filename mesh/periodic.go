package mesh

// Resolver maps a vertex to its canonical representative. periodic.Pairs
// implements this; it is kept as a small interface here so mesh does not
// import periodic (avoiding a dependency cycle and keeping mesh usable
// without periodic BCs at all).
type Resolver interface {
	Resolve(v int) int
}

// ApplyPeriodic rewrites every element's vertex list in place through r,
// merging periodic slave vertices into their master before topology is
// built (SPEC_FULL.md "Supplemented features"). Must be called before any
// topology/partitioning component reads the mesh.
func (m *Mesh) ApplyPeriodic(r Resolver) {
	data := m.conn.Data()
	for i, v := range data {
		data[i] = r.Resolve(v)
	}
}
