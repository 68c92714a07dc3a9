package areamethod

import (
	"sort"
	"strconv"
	"strings"
)

// Point is a symbolic point. Points are identified by name; the global order
// of points, used for all canonical forms, is the lexicographic order of
// names.
type Point string

// reserved is the prefix of names of points and parameters made up by the
// engine.
const reserved = "$"

func (p Point) String() string {
	return string(p)
}

// Less is the global point order.
func (p Point) Less(q Point) bool {
	return p < q
}

// IsSynthetic is true for points introduced by the engine (auxiliary points of
// construction lowering, placeholder basis points).
func (p Point) IsSynthetic() bool {
	return strings.HasPrefix(string(p), reserved)
}

// Validate checks if p is usable as a user-supplied point name.
func (p Point) Validate() error {
	return validateName(string(p), "point")
}

func validateName(name, what string) error {
	if name == "" {
		return Malformed("empty %s name", what)
	}
	if strings.HasPrefix(name, reserved) {
		return Malformed("%s name %q uses reserved prefix %q", what, name, reserved)
	}
	if strings.ContainsAny(name, ",;()[] \t\n") {
		return Malformed("%s name %q contains illegal characters", what, name)
	}
	return nil
}

// Points converts a list of names to points.
func Points(names ...string) []Point {
	pts := make([]Point, len(names))
	for i, n := range names {
		pts[i] = Point(n)
	}
	return pts
}

// Synthetic creates an engine-owned point, derived from a base name and a
// sequence number.
func Synthetic(base string, n int) Point {
	return Point(reserved + base + "." + strconv.Itoa(n))
}

// Placeholder basis points, used if an objective has less than three free
// points.
const (
	PlaceholderO Point = reserved + "O"
	PlaceholderU Point = reserved + "U"
	PlaceholderV Point = reserved + "V"
)

// SortPoints sorts a slice of points in global order.
func SortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool { return pts[i] < pts[j] })
}

// sortParity sorts pts in place and returns the sign of the permutation. If
// two points coincide the sign is 0.
func sortParity(pts []Point) int {
	sign := 1
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j] < pts[j-1]; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
			sign = -sign
		}
	}
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			return 0
		}
	}
	return sign
}

func joinPoints(pts ...Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(p))
	}
	return b.String()
}
