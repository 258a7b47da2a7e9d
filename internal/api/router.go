package api

import (
	"vehicle_pms/internal/api/handler"
	"vehicle_pms/internal/api/middleware"
	"vehicle_pms/internal/domain"
	"vehicle_pms/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(as *service.AuthService, ds *service.DashboardService,
	authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", handler.Health)

	// WebSocket endpoint (không cần auth cho real-time connection)
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	admin := string(domain.RoleAdmin)
	user := string(domain.RoleUser)

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		sessionH := handler.NewParkingSessionHandler(ds)
		sessionRoutes := v1.Group("/parking-sessions")
		{
			sessionRoutes.GET("", authMw.AuthorizeRole(admin), sessionH.ListSessions)
			sessionRoutes.GET("/user/:user_id", authMw.AuthorizeRole(admin, user), sessionH.ListUserSessions)
			sessionRoutes.GET("/:id", authMw.AuthorizeRole(admin), sessionH.GetSessionByID)
			sessionRoutes.POST("", authMw.AuthorizeRole(admin), sessionH.CreateSession)
			sessionRoutes.PUT("/exit/:plate_number", authMw.AuthorizeRole(admin), sessionH.ExitSession)
		}

		paymentH := handler.NewPaymentHandler(ds)
		paymentRoutes := v1.Group("/payments")
		paymentRoutes.Use(authMw.AuthorizeRole(admin))
		{
			paymentRoutes.GET("", paymentH.ListPayments)
			paymentRoutes.GET("/:id", paymentH.GetPaymentByID)
		}

		slotH := handler.NewParkingSlotHandler(ds)
		slotRoutes := v1.Group("/parking-slots")
		{
			slotRoutes.GET("", slotH.ListSlots)
			slotRoutes.GET("/summary", slotH.GetSlotSummary)
			slotRoutes.GET("/:id", slotH.GetSlotByID)
			slotRoutes.POST("", authMw.AuthorizeRole(admin), slotH.CreateSlot)
		}

		vehicleH := handler.NewVehicleHandler(ds)
		vehicleRoutes := v1.Group("/vehicles")
		{
			vehicleRoutes.GET("", vehicleH.ListVehicles)
		}
	}
	return r
}
