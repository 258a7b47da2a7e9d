package query

import "strings"

// Schema khai báo các field mà engine được phép search và filter cho một
// loại entity (session, payment, slot, vehicle).
type Schema struct {
	// SearchPaths là các dotted path tham gia free-text search.
	// Record khớp khi BẤT KỲ field nào chứa chuỗi tìm kiếm.
	SearchPaths []string
	// StatusPath là field categorical dùng cho equality filter.
	StatusPath string
}

// Filter áp dụng free-text search (không phân biệt hoa thường) và equality
// filter theo AND. Trục nào rỗng thì bỏ qua trục đó. Luôn trả về slice mới,
// không bao giờ sửa đầu vào.
func Filter(records []Record, search, status string, sch Schema) []Record {
	out := make([]Record, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, rec := range records {
		if needle != "" && !matchesSearch(rec, needle, sch.SearchPaths) {
			continue
		}
		if status != "" && !matchesStatus(rec, status, sch.StatusPath) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(rec Record, needle string, paths []string) bool {
	for _, path := range paths {
		s, ok := Resolve(rec, path).searchText()
		if ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func matchesStatus(rec Record, status, path string) bool {
	if path == "" {
		return true
	}
	v := Resolve(rec, path)
	return v.Kind == KindString && v.Str == status
}
