package handler

import (
	"github.com/gin-gonic/gin"

	"vehicle_pms/internal/api/middleware"
	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
)

// bearerToken lấy token đã được middleware Authenticate lưu vào context
// để chuyển tiếp lên backend.
func bearerToken(c *gin.Context) string {
	v, _ := c.Get(middleware.TokenKey)
	token, _ := v.(string)
	return token
}

// queryState bind toàn bộ view state của một bảng từ query params. Bảng
// nào cũng có sort mặc định riêng (giống các cột mặc định trên dashboard)
// áp dụng khi client không gửi sortBy.
func queryState(c *gin.Context, defaultSort string, defaultDir query.Direction) (query.State, error) {
	var dto domain.QueryDTO
	if err := c.ShouldBindQuery(&dto); err != nil {
		return query.State{}, err
	}

	st := query.State{
		Search:   dto.Search,
		Status:   dto.Status,
		SortPath: dto.SortBy,
		Dir:      query.ParseDirection(dto.Order),
		PageNum:  dto.Page,
		PageSize: dto.PageSize,
	}
	if st.SortPath == "" {
		st.SortPath = defaultSort
		st.Dir = defaultDir
	}
	return st, nil
}

// pageResponse là envelope chung cho mọi endpoint collection.
func pageResponse(page query.Page, st query.State) gin.H {
	return gin.H{
		"records":      page.Records,
		"totalRecords": page.Total,
		"page":         st.PageNum,
		"pageSize":     st.PageSize,
	}
}
