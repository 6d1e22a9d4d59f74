package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Pagination   PaginationConfig
	Storage      StorageConfig
	ShoppingList ShoppingListConfig
	Scheduler    SchedulerConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds the secret shared with the identity provider that mints tokens.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type PaginationConfig struct {
	PageSize    int
	MaxPageSize int
}

type StorageConfig struct {
	Type          string // "local" or "s3"
	LocalDir      string
	PublicBaseURL string
	S3            S3Config
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

type ShoppingListConfig struct {
	Title    string
	FontPath string // TTF override; empty uses the bundled DejaVu Sans
}

type SchedulerConfig struct {
	ImageSweepSchedule string
	ImageSweepGrace    time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "foodgram"),
			Password: getEnv("DB_PASSWORD", "foodgram"),
			DBName:   getEnv("DB_NAME", "foodgram"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key"),
			AccessTokenExpiry: parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Pagination: PaginationConfig{
			PageSize:    parseInt(getEnv("PAGE_SIZE", "6"), 6),
			MaxPageSize: parseInt(getEnv("MAX_PAGE_SIZE", "100"), 100),
		},
		Storage: StorageConfig{
			Type:          getEnv("STORAGE_TYPE", "local"),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "./media"),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "/media"),
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "eu-central-1"),
				Bucket:          getEnv("AWS_S3_BUCKET", "foodgram-media"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			},
		},
		ShoppingList: ShoppingListConfig{
			Title:    getEnv("SHOPPING_LIST_TITLE", "SHOPPING LIST"),
			FontPath: getEnv("SHOPPING_LIST_FONT_PATH", ""),
		},
		Scheduler: SchedulerConfig{
			ImageSweepSchedule: getEnv("IMAGE_SWEEP_SCHEDULE", "0 3 * * *"),
			ImageSweepGrace:    parseDuration(getEnv("IMAGE_SWEEP_GRACE", "24h"), 24*time.Hour),
		},
	}

	if config.Storage.Type != "local" && config.Storage.Type != "s3" {
		return nil, fmt.Errorf("unsupported STORAGE_TYPE %q", config.Storage.Type)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
