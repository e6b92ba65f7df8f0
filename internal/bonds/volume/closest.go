package volume

import "time"

// ClosestColumn returns the column whose timestamp is nearest to
// target among those within tolerance of it. When two columns are
// equidistant the first one in ascending-time order wins. The second
// return value is false when no column lies within tolerance.
func ClosestColumn(cols []Column, target time.Time, tolerance time.Duration) (Column, bool) {
	var best Column
	bestDist := tolerance + 1
	found := false

	for _, col := range cols {
		dist := col.Time.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if dist > tolerance {
			continue
		}
		if !found || dist < bestDist {
			best = col
			bestDist = dist
			found = true
		}
	}

	return best, found
}
