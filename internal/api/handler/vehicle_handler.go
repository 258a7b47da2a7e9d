package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle_pms/internal/query"
	"vehicle_pms/internal/service"
	"vehicle_pms/internal/upstream"
)

type VehicleHandler struct {
	dashboard *service.DashboardService
}

func NewVehicleHandler(ds *service.DashboardService) *VehicleHandler {
	return &VehicleHandler{dashboard: ds}
}

// GET /vehicles
// Với vehicle, equality filter chạy trên vehicleType (CAR/TRUCK/...)
// thay vì status.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	st, err := queryState(c, "plateNumber", query.Asc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số query không hợp lệ: " + err.Error()})
		return
	}

	page, err := h.dashboard.Vehicles(c.Request.Context(), bearerToken(c), st)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, st))
}
