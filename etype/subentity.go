package etype

// subentityLocalVerts[type] lists, for each local sub-entity (edge in 2-D,
// face in 3-D), the local vertex indices composing it. Index in the outer
// slice is the sub-entity's local index within the parent.
var subentityLocalVerts = map[Type][][]int{
	Line: {
		{0},
		{1},
	},
	Triangle: {
		{1, 2},
		{2, 0},
		{0, 1},
	},
	Quadrangle: {
		{0, 1},
		{0, 2},
		{1, 3},
		{2, 3},
	},
	Tetrahedron: {
		{1, 2, 3},
		{0, 2, 3},
		{0, 1, 3},
		{0, 1, 2},
	},
	Prism: {
		{0, 1, 2},
		{0, 1, 3, 4},
		{0, 2, 3, 5},
		{1, 2, 4, 5},
		{3, 4, 5},
	},
	Pyramid: {
		{0, 1, 2, 3},
		{0, 1, 4},
		{0, 2, 4},
		{1, 3, 4},
		{2, 3, 4},
	},
	Hexahedron: {
		{0, 1, 2, 3},
		{0, 1, 4, 5},
		{0, 2, 4, 6},
		{1, 3, 5, 7},
		{2, 3, 6, 7},
		{4, 5, 6, 7},
	},
}

// SubentityLocalVerts returns the canonical local vertex indices of
// sub-entity i of type t, or nil if i is out of range for t.
func SubentityLocalVerts(t Type, i int) []int {
	table, ok := subentityLocalVerts[t]
	if !ok || i < 0 || i >= len(table) {
		return nil
	}
	return table[i]
}

// NumSubentities returns how many edges/faces type t declares.
func NumSubentities(t Type) int {
	return len(subentityLocalVerts[t])
}

// Fingerprint maps the sorted local vertex indices of a sub-entity back to
// its local index within the parent element type t, using the closed-form
// integer encodings fixed by the spec (§4.2). It panics on an
// unrecognized type/arity combination — that indicates a corrupt caller,
// not bad input data, since fingerprint is always invoked with indices
// already verified to come from t's own sub-entity tables.
func Fingerprint(t Type, sorted []int) int {
	switch t {
	case Line:
		if len(sorted) != 1 {
			panic("etype: Line fingerprint expects 1 index")
		}
		return sorted[0]
	case Triangle:
		if len(sorted) != 2 {
			panic("etype: Triangle fingerprint expects 2 indices")
		}
		return 3 - sorted[0] - sorted[1]
	case Quadrangle:
		if len(sorted) != 2 {
			panic("etype: Quadrangle fingerprint expects 2 indices")
		}
		return (sorted[0] + sorted[1]) >> 1
	case Tetrahedron:
		if len(sorted) != 3 {
			panic("etype: Tetrahedron fingerprint expects 3 indices")
		}
		return 6 - sorted[0] - sorted[1] - sorted[2]
	case Prism:
		switch len(sorted) {
		case 3:
			s := sorted[0] + sorted[1] + sorted[2]
			if s == 3 {
				return 0
			}
			return 4
		case 4:
			s := sorted[0] + sorted[1] + sorted[2] + sorted[3]
			return (s - 6) >> 1
		default:
			panic("etype: Prism fingerprint expects 3 or 4 indices")
		}
	case Pyramid:
		switch len(sorted) {
		case 4:
			return 0
		case 3:
			s := sorted[0] + sorted[1] + sorted[2]
			if s < 8 {
				return s - 4
			}
			return s - 5
		default:
			panic("etype: Pyramid fingerprint expects 3 or 4 indices")
		}
	case Hexahedron:
		if len(sorted) != 4 {
			panic("etype: Hexahedron fingerprint expects 4 indices")
		}
		s := sorted[0] + sorted[1] + sorted[2] + sorted[3]
		lookup := map[int]int{0: 0, 2: 1, 3: 2, 5: 3, 6: 4, 8: 5}
		v, ok := lookup[(s-6)>>1]
		if !ok {
			panic("etype: Hexahedron fingerprint: no match for sum")
		}
		return v
	default:
		panic("etype: Fingerprint: unsupported type " + t.String())
	}
}
