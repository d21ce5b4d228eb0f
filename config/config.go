// Package config loads service settings from the environment, reading a
// .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	DevMode  bool

	MongoURI     string
	DatabaseName string

	JWTSecret      string
	AccessTokenTTL time.Duration
	AdminEmail     string
	AdminPassword  string

	AllowedOrigins []string

	Storage StorageConfig
	Uploads UploadConfig

	QueryMaxLimit     int
	QueryDefaultLimit int
}

type StorageConfig struct {
	Provider string // gcs or r2

	GCSBucket          string
	GCSCredentialsFile string

	R2Bucket       string
	R2AccessKeyID  string
	R2SecretKey    string
	R2Endpoint     string
	R2PublicDomain string
}

type UploadConfig struct {
	AllowedExtensions []string
	AllowedMimeTypes  []string
	MaxSizeMB         int
}

// Load reads configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvBool("DEV_MODE", false),
		MongoURI:     os.Getenv("MONGODB_URI"),
		DatabaseName: getEnv("DATABASE_NAME", "insurance"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		AdminEmail:     strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),

		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		Storage: StorageConfig{
			Provider:           strings.ToLower(getEnv("STORAGE_PROVIDER", "none")),
			GCSBucket:          os.Getenv("GCS_BUCKET"),
			GCSCredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
			R2Bucket:           os.Getenv("R2_BUCKET"),
			R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
			R2SecretKey:        os.Getenv("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:         os.Getenv("R2_ENDPOINT"),
			R2PublicDomain:     strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
		},
		Uploads: UploadConfig{
			AllowedExtensions: splitList(getEnv("ALLOWED_FILE_EXTENSIONS", ".pdf")),
			AllowedMimeTypes:  splitList(getEnv("ALLOWED_FILE_MIME_TYPES", "application/pdf")),
			MaxSizeMB:         getEnvInt("MAX_UPLOAD_SIZE_MB", 5),
		},

		QueryMaxLimit:     getEnvInt("READ_QUERY_MAX_LIMIT", 100),
		QueryDefaultLimit: getEnvInt("DEFAULT_READ_QUERY_LIMIT", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Uploads.MaxSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	switch c.Storage.Provider {
	case "gcs", "r2", "none":
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q (want gcs, r2 or none)", c.Storage.Provider)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
