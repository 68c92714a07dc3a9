package construct

import (
	am "github.com/npillmayer/areamethod"
)

// Validate checks a sequence of constructions: each construction has to be
// valid on its own, no point may be introduced twice, and every dependency
// has to be free or introduced earlier. If metric is false, constructions
// needing the metric plane are rejected.
func Validate(seq []Construction, metric bool) error {
	introduced := introducedAt(seq)
	for i, c := range seq {
		if err := c.Validate(); err != nil {
			tracer().Errorf("construction %d invalid: %v", i, err)
			return err
		}
		if !metric && c.Metric() {
			return am.Unsupported("%v: needs the metric plane", c)
		}
		if j := introduced[c.Point()]; j != i {
			return am.Malformed("%v: point %s introduced twice", c, c.Point())
		}
		for _, p := range c.Deps() {
			if j, ok := introduced[p]; ok && j >= i {
				return am.Malformed("%v: %s used before it is constructed", c, p)
			}
		}
	}
	return nil
}

// introducedAt maps each introduced point to the index of its first
// construction.
func introducedAt(seq []Construction) map[am.Point]int {
	m := make(map[am.Point]int, len(seq))
	for i, c := range seq {
		if _, ok := m[c.Point()]; !ok {
			m[c.Point()] = i
		}
	}
	return m
}

// FreePoints returns the points a sequence depends on which are not introduced
// by any of its constructions, in global order.
func FreePoints(seq []Construction) []am.Point {
	introduced := introducedAt(seq)
	seen := make(map[am.Point]bool)
	var free []am.Point
	for _, c := range seq {
		for _, p := range c.Deps() {
			if _, ok := introduced[p]; !ok && !seen[p] {
				seen[p] = true
				free = append(free, p)
			}
		}
	}
	am.SortPoints(free)
	return free
}

// Introduced returns the points introduced by a sequence, in order.
func Introduced(seq []Construction) []am.Point {
	pts := make([]am.Point, len(seq))
	for i, c := range seq {
		pts[i] = c.Point()
	}
	return pts
}
