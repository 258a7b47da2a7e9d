package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle_pms/internal/query"
	"vehicle_pms/internal/service"
	"vehicle_pms/internal/upstream"
)

type PaymentHandler struct {
	dashboard *service.DashboardService
}

func NewPaymentHandler(ds *service.DashboardService) *PaymentHandler {
	return &PaymentHandler{dashboard: ds}
}

// GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	st, err := queryState(c, "createdAt", query.Desc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tham số query không hợp lệ: " + err.Error()})
		return
	}

	page, err := h.dashboard.Payments(c.Request.Context(), bearerToken(c), st)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Backend từ chối token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách thanh toán", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, st))
}

// GET /payments/:id
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	payment, err := h.dashboard.PaymentByID(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy thanh toán"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy thông tin thanh toán", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}
