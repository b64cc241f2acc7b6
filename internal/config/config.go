package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	RedisURL string // optional; in-process store is used when empty

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryDays     int
	ResetTokenTTL     time.Duration

	RegistrationTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	GoogleClientID string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Coupons       string
	Categories    string
	SubCategories string
	Products      string
	Sliders       string
	Reviews       string
	Wishlists     string
	Orders        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Coupons:       getEnv("DYNAMO_TABLE_COUPONS", "walkin_coupons"),
			Categories:    getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			SubCategories: getEnv("DYNAMO_TABLE_SUBCATEGORIES", "subcategories"),
			Products:      getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Sliders:       getEnv("DYNAMO_TABLE_SLIDERS", "sliders"),
			Reviews:       getEnv("DYNAMO_TABLE_REVIEWS", "reviews"),
			Wishlists:     getEnv("DYNAMO_TABLE_WISHLISTS", "wishlists"),
			Orders:        getEnv("DYNAMO_TABLE_ORDERS", "orders"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "poky-images"),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryDays:     getEnvInt("JWT_EXPIRY_DAYS", 1),
		ResetTokenTTL:     getEnvDuration("RESET_TOKEN_TTL", 5*time.Minute),

		RegistrationTTL: getEnvDuration("REGISTRATION_TTL", 5*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@pokystore.in"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
