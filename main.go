package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicle_pms/internal/api"
	"vehicle_pms/internal/api/handler"
	"vehicle_pms/internal/api/middleware"
	"vehicle_pms/internal/config"
	"vehicle_pms/internal/service"
	"vehicle_pms/internal/store"
	"vehicle_pms/internal/upstream/httpapi"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Redis cho last-good snapshot cache (tùy chọn)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("CẢNH BÁO: Không kết nối được Redis (%s), tắt cache: %v", cfg.RedisAddr, err)
			rdb = nil
		} else {
			log.Println("Đã kết nối Redis cache:", cfg.RedisAddr)
		}
		cancelPing()
	} else {
		log.Println("REDIS_ADDR chưa được cấu hình. Last-good cache sẽ không chạy.")
	}

	// 3. Upstream client tới backend parking API
	apiClient := httpapi.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	log.Println("Backend API:", cfg.UpstreamBaseURL)

	// 4. Snapshot store
	snapshotStore := store.New(rdb, cfg.CacheTTL)

	// init websocket manager
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	log.Println("WebSocket Manager đã được khởi động.")

	// 5. Initialize Services
	authService := service.NewAuthService(apiClient, cfg.JWTSecret)
	dashboardService := service.NewDashboardService(apiClient, snapshotStore, cfg.SnapshotTTL, webSocketManager)

	// 6. Initialize Auth Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// start background job dọn các snapshot quá hạn
	go startSnapshotEvictionJob(snapshotStore, cfg.SnapshotTTL)

	// 7. Setup HTTP Router
	router := api.SetupRouter(authService, dashboardService, authMiddleware, webSocketManager)

	// 8. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("Lỗi đóng kết nối Redis: %v", err)
		}
	}

	log.Println("Server đã tắt.")
}

func startSnapshotEvictionJob(snapshotStore *store.Store, ttl time.Duration) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if count := snapshotStore.EvictStale(ttl); count > 0 {
			log.Printf("Đã dọn %d snapshot quá hạn", count)
		}
	}
}
