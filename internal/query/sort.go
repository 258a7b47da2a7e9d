package query

import "sort"

// SortBy sắp xếp ổn định theo field tại path (có thể là dotted path) và
// direction. Không có sort key thì giữ nguyên thứ tự. Trả về slice mới.
func SortBy(records []Record, path string, dir Direction) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if path == "" || len(out) < 2 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Compare(Resolve(out[i], path), Resolve(out[j], path), dir) < 0
	})
	return out
}
