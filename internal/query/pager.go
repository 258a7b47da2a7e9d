package query

// DefaultPageSize khớp với page size mặc định của các bảng trên dashboard.
// UI gợi ý 10/25/50/100 nhưng engine chấp nhận mọi số dương.
const DefaultPageSize = 10

// Page là kết quả cuối của pipeline: các record của trang hiện tại cộng
// tổng số record sau khi filter (để caller vẽ pagination control).
type Page struct {
	Records []Record `json:"records"`
	Total   int      `json:"totalRecords"`
}

// Paginate cắt collection đã filter + sort thành trang được yêu cầu.
// page tính từ 1; page vượt quá cuối danh sách trả về trang rỗng chứ không
// phải lỗi (caller tự reset page về 1 khi filter thay đổi).
func Paginate(records []Record, page, pageSize int) Page {
	total := len(records)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	start := (page - 1) * pageSize
	if start >= total {
		return Page{Records: []Record{}, Total: total}
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	out := make([]Record, end-start)
	copy(out, records[start:end])
	return Page{Records: out, Total: total}
}
