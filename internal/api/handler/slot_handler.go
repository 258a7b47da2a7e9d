package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/query"
	"vehicle_pms/internal/service"
	"vehicle_pms/internal/upstream"
)

type ParkingSlotHandler struct {
	dashboard *service.DashboardService
}

func NewParkingSlotHandler(ds *service.DashboardService) *ParkingSlotHandler {
	return &ParkingSlotHandler{dashboard: ds}
}

// GET /parking-slots
func (h *ParkingSlotHandler) ListSlots(c *gin.Context) {
	st, err := queryState(c, "slotNumber", query.Asc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số query không hợp lệ: " + err.Error()})
		return
	}

	page, err := h.dashboard.Slots(c.Request.Context(), bearerToken(c), st)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách chỗ đỗ", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, st))
}

// GET /parking-slots/summary
func (h *ParkingSlotHandler) GetSlotSummary(c *gin.Context) {
	summary, err := h.dashboard.SlotSummary(c.Request.Context(), bearerToken(c))
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tính thống kê chỗ đỗ", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /parking-slots/:id
func (h *ParkingSlotHandler) GetSlotByID(c *gin.Context) {
	slot, err := h.dashboard.SlotByID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy chỗ đỗ"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy thông tin chỗ đỗ", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// POST /parking-slots
func (h *ParkingSlotHandler) CreateSlot(c *gin.Context) {
	var dto domain.CreateSlotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	if err := h.dashboard.CreateSlot(c.Request.Context(), bearerToken(c), dto); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không tạo được chỗ đỗ", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Đã tạo chỗ đỗ, dữ liệu cũ cần refetch"})
}
