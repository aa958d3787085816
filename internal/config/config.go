package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 애플리케이션의 모든 설정을 통합 관리하는 메인 구조체
type Config struct {
	// Server
	ServerPort string
	ServerEnv  string

	// Database
	DatabaseURL string

	// Internal API (jobs 바이너리 전용)
	InternalAPIKey string
	ServerAPI      ServerAPIConfig

	// Search
	DefaultRadiusKm float64
	MaxLimit        int

	// Leaderboard
	LeaderboardTopN int

	// Sweep
	SweepBatchSize int

	// SigNoz
	SigNozEndpoint string
}

// ServerAPIConfig jobs 바이너리가 내부 API를 호출할 때 사용하는 설정
type ServerAPIConfig struct {
	BaseURL string
	APIKey  string
	Enabled bool
}

// Load 환경변수에서 설정을 로드
func Load() *Config {
	// .env 파일 로드 (없어도 에러 무시)
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),

		DatabaseURL: getDatabaseURL(),

		InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		ServerAPI: ServerAPIConfig{
			BaseURL: getEnv("SERVER_API_BASE_URL", "http://localhost:3000"),
			APIKey:  getEnv("INTERNAL_API_KEY", ""),
			Enabled: getEnvBool("SERVER_API_ENABLED", true),
		},

		DefaultRadiusKm: getEnvFloat("SEARCH_DEFAULT_RADIUS_KM", 50),
		MaxLimit:        getEnvAsInt("SEARCH_MAX_LIMIT", 100),

		LeaderboardTopN: getEnvAsInt("LEADERBOARD_TOP_N", 10),

		SweepBatchSize: getEnvAsInt("SWEEP_BATCH_SIZE", 500),

		SigNozEndpoint: getEnv("SIGNOZ_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	// 1. DATABASE_URL이 있으면 그대로 사용
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// 2. 개별 환경변수로 구성 (k8s secret 키 이름과 일치)
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "nearmarket")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
