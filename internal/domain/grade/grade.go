// Package grade defines the closed set of letter grades the system
// recognizes and their academic point weights.
package grade

import "strings"

// Grade is a letter-grade code, e.g. "A*" or "B+".
type Grade string

// The allowed grades. S (satisfactory/ungraded) and X (incomplete or
// withdrawn) carry no academic weight.
const (
	AStar Grade = "A*"
	A     Grade = "A"
	BPlus Grade = "B+"
	B     Grade = "B"
	CPlus Grade = "C+"
	C     Grade = "C"
	DPlus Grade = "D+"
	D     Grade = "D"
	E     Grade = "E"
	F     Grade = "F"
	S     Grade = "S"
	X     Grade = "X"
)

// canonical is the display and pivot order of the enumeration. E is part of
// the canonical set everywhere: the point table defines E=0, and the filter,
// pivot completion, and chart all use the same enumeration.
var canonical = []Grade{AStar, A, BPlus, B, CPlus, C, DPlus, D, E, F, S, X}

// points maps the grades that carry academic weight. S and X are absent on
// purpose: they count toward row totals but never toward the average.
var points = map[Grade]float64{
	AStar: 10,
	A:     10,
	BPlus: 9,
	B:     8,
	CPlus: 7,
	C:     6,
	DPlus: 5,
	D:     4,
	E:     0,
	F:     0,
}

// Canonical returns the allowed grades in display order. The returned slice
// is a copy; callers may reorder it.
func Canonical() []Grade {
	out := make([]Grade, len(canonical))
	copy(out, canonical)
	return out
}

// Points returns the academic weight of g. ok is false for S, X, and
// anything outside the enumeration.
func Points(g Grade) (pts float64, ok bool) {
	pts, ok = points[g]
	return pts, ok
}

// Parse normalizes raw store text into a Grade. ok is false when the text
// is not part of the enumeration.
func Parse(s string) (Grade, bool) {
	g := Grade(strings.TrimSpace(s))
	for _, c := range canonical {
		if g == c {
			return g, true
		}
	}
	return "", false
}

// IsAllowed reports whether raw text names a grade in the enumeration.
func IsAllowed(s string) bool {
	_, ok := Parse(s)
	return ok
}
