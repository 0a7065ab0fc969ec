package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"chefdhundo-backend/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	AppURL      string
	FrontendURL string
	// Extra origins allowed by CORS, comma separated
	CORSAllowedOrigins []string
	// Notion: one integration token per database
	NotionBaseURL     string
	NotionVersion     string
	NotionUserDBToken string
	NotionUserDBID    string
	NotionResumeToken string
	NotionResumeDBID  string
	// Clerk
	ClerkJWKSURL       string
	ClerkIssuer        string
	ClerkWebhookSecret string
	ClerkEmailClaim    string
	// Cashfree
	CashfreeClientID      string
	CashfreeClientSecret  string
	CashfreeAPIVersion    string
	CashfreeVerifyWebhook bool
	// Optional audit store
	DBUrl string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitWebhookThreshold int
	// Directory cache
	DirectoryRefreshSpec string
	DirectoryMaxAge      time.Duration
	PendingEditTTL       time.Duration
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Security Configuration
	SecurityLogToDB bool
}

func LoadConfig() (*Config, error) {
	// Only effective locally; production injects the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AppURL:             getEnv("APP_URL", ""),
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),

		NotionBaseURL:     strings.TrimRight(getEnv("NOTION_API_BASE_URL", "https://api.notion.com/v1"), "/"),
		NotionVersion:     getEnv("NOTION_VERSION", "2022-06-28"),
		NotionUserDBToken: getEnv("NOTION_USERDB_INT", ""),
		NotionUserDBID:    getEnv("NOTION_USERDB_ID", ""),
		NotionResumeToken: getEnv("NOTION_RESUMEDBSUB_INT", ""),
		NotionResumeDBID:  getEnv("NOTION_RESUMEDBSUB_ID", ""),

		ClerkJWKSURL:       getEnv("CLERK_JWKS_URL", ""),
		ClerkIssuer:        strings.TrimRight(getEnv("CLERK_ISSUER", ""), "/"),
		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
		ClerkEmailClaim:    getEnv("CLERK_EMAIL_CLAIM", "email"),

		CashfreeClientID:      getEnv("CASHFREE_CLIENT_ID", ""),
		CashfreeClientSecret:  getEnv("CASHFREE_CLIENT_SECRET", ""),
		CashfreeAPIVersion:    getEnv("CASHFREE_API_VERSION", "2023-08-01"),
		CashfreeVerifyWebhook: getEnvBool("CASHFREE_VERIFY_WEBHOOK", false),

		DBUrl: getEnv("DATABASE_URL", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitWebhookThreshold: getEnvInt("RATE_LIMIT_WEBHOOK_THRESHOLD", 30),

		DirectoryRefreshSpec: getEnv("DIRECTORY_REFRESH_SPEC", "@every 5m"),
		DirectoryMaxAge:      getEnvDuration("DIRECTORY_MAX_AGE", 5*time.Minute),
		PendingEditTTL:       getEnvDuration("PENDING_EDIT_TTL", 30*time.Minute),

		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@chefdhundo.com"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "support@chefdhundo.com"),

		SecurityLogToDB: getEnvBool("SECURITY_LOG_TO_DB", true),
	}

	if cfg.NotionUserDBToken == "" || cfg.NotionResumeToken == "" || cfg.NotionUserDBID == "" || cfg.NotionResumeDBID == "" {
		logger.Log.Warn("Notion credentials are incomplete; collection calls will fail with a configuration error")
	}
	if cfg.ClerkJWKSURL == "" {
		logger.Log.Warn("CLERK_JWKS_URL not configured; protected routes will reject every request")
	}
	if cfg.UpstashRedisURL == "" {
		logger.Log.Warn("UPSTASH_REDIS_URL not configured; rate limiting and pending edits use in-memory fallback")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
