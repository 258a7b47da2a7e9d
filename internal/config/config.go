package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Backend parking API (system of record)
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Secret dùng chung với backend để verify JWT mà backend đã phát hành
	JWTSecret string

	// Snapshot của collection được coi là còn mới trong khoảng này,
	// quá hạn thì lần query kế tiếp sẽ refetch.
	SnapshotTTL time.Duration

	// Redis cache cho last-good snapshot. Addr rỗng = tắt cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Cảnh báo: Không thể tải file .env: %v", err)
	}

	upstreamTimeout, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "10"))
	snapshotTTL, _ := strconv.Atoi(getEnv("SNAPSHOT_TTL_SECONDS", "30"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8250/api/v1"),
		UpstreamTimeout: time.Duration(upstreamTimeout) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", "your-very-secret-key-for-jwt-!@#$"), // << THAY BẰNG SECRET KEY MẠNH HƠN

		SnapshotTTL: time.Duration(snapshotTTL) * time.Second,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		CacheTTL:      time.Duration(cacheTTL) * time.Second,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Biến môi trường '%s' không được đặt, sử dụng giá trị mặc định: '%s'", key, fallback)
	return fallback
}
