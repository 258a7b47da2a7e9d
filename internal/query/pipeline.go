package query

// State gom toàn bộ input của một lần chạy pipeline. Engine không giữ state
// giữa các lần gọi: cùng State trên cùng collection luôn cho ra cùng Page.
type State struct {
	Search   string
	Status   string
	SortPath string
	Dir      Direction
	PageNum  int
	PageSize int
}

// Run chạy filter -> sort -> paginate trên một snapshot. Collection vắng
// mặt (nil) được coi là collection rỗng, không bao giờ là lỗi; mọi stage
// trả về slice mới nên snapshot đầu vào không bị đụng tới.
func Run(records []Record, st State, sch Schema) Page {
	filtered := Filter(records, st.Search, st.Status, sch)
	sorted := SortBy(filtered, st.SortPath, st.Dir)
	return Paginate(sorted, st.PageNum, st.PageSize)
}
