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

type ParkingSessionHandler struct {
	dashboard *service.DashboardService
}

func NewParkingSessionHandler(ds *service.DashboardService) *ParkingSessionHandler {
	return &ParkingSessionHandler{dashboard: ds}
}

// GET /parking-sessions
func (h *ParkingSessionHandler) ListSessions(c *gin.Context) {
	st, err := queryState(c, "entryTime", query.Desc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số query không hợp lệ: " + err.Error()})
		return
	}

	page, err := h.dashboard.Sessions(c.Request.Context(), bearerToken(c), st)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách phiên đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, st))
}

// GET /parking-sessions/user/:user_id
func (h *ParkingSessionHandler) ListUserSessions(c *gin.Context) {
	st, err := queryState(c, "entryTime", query.Desc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số query không hợp lệ: " + err.Error()})
		return
	}

	page, err := h.dashboard.UserSessions(c.Request.Context(), bearerToken(c), c.Param("user_id"), st)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy phiên đỗ xe của người dùng", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, st))
}

// GET /parking-sessions/:id
func (h *ParkingSessionHandler) GetSessionByID(c *gin.Context) {
	detail, err := h.dashboard.SessionByID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên đỗ xe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy thông tin phiên đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// POST /parking-sessions
func (h *ParkingSessionHandler) CreateSession(c *gin.Context) {
	var dto domain.CreateParkingSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	if err := h.dashboard.CreateSession(c.Request.Context(), bearerToken(c), dto); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy xe với biển số này"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không tạo được phiên đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Đã tạo phiên đỗ xe, dữ liệu cũ cần refetch"})
}

// PUT /parking-sessions/exit/:plate_number
func (h *ParkingSessionHandler) ExitSession(c *gin.Context) {
	plate := c.Param("plate_number")
	if plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu biển số xe"})
		return
	}

	if err := h.dashboard.ExitSession(c.Request.Context(), bearerToken(c), plate); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên active cho biển số này"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không kết thúc được phiên đỗ xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Xe đã ra, dữ liệu cũ cần refetch"})
}
