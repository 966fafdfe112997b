package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTimezone string // IANA name; defines the calendar day for every goal

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage. Empty S3_BUCKET stores photos on local disk under StoragePath.
	StoragePath            string
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPrivate time.Duration // Expiry for proof photo links

	// Photo verification
	OpenAIAPIKey  string
	OpenAIBaseURL string   // Optional: OpenAI-compatible endpoint
	VerifyModels  []string // Tried in order until one answers
	VerifyTimeout time.Duration
	// Approve every proof without calling a model. Defaults to on in development without an API key.
	VerifyAutoApprove bool

	// Workers and limits
	ReminderInterval    time.Duration
	SubmitRatePerMinute int
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Proofstreak"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:      envRequired("APP_URL"), // Required: base URL for email links
		Port:        envString("PORT", "8090"),
		AppTimezone: envString("APP_TIMEZONE", "Local"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/proofstreak.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StoragePath:            envString("STORAGE_PATH", "./data/uploads"),
		S3Region:               envString("S3_REGION", "us-east-1"),
		S3Bucket:               envString("S3_BUCKET", ""),
		S3AccessKey:            envString("S3_ACCESS_KEY", ""),
		S3SecretKey:            envString("S3_SECRET_KEY", ""),
		S3Endpoint:             envString("S3_ENDPOINT", ""),
		S3PresignExpiryPrivate: envDuration("S3_PRESIGN_EXPIRY_PRIVATE", 1*time.Hour),

		// Verification
		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),
		VerifyModels:  envList("VERIFY_MODELS", []string{"gpt-4o-mini", "gpt-4o"}),
		VerifyTimeout: envDuration("VERIFY_TIMEOUT", 30*time.Second),

		// Workers and limits
		ReminderInterval:    envDuration("REMINDER_INTERVAL", 5*time.Minute),
		SubmitRatePerMinute: envInt("SUBMIT_RATE_PER_MINUTE", 6),
	}

	cfg.VerifyAutoApprove = envBool("VERIFY_AUTO_APPROVE", cfg.IsDevelopment() && cfg.OpenAIAPIKey == "")

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development falls back to logged emails, local photo storage and auto-approved proofs.
func validateProduction(cfg *Config) {
	for _, missing := range cfg.missingProductionKeys() {
		slog.Error("production deployment requires "+missing,
			"hint", "set APP_ENV=development for local testing")
		os.Exit(1)
	}
}

func (c *Config) missingProductionKeys() []string {
	var missing []string
	if c.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	return missing
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList reads a comma-separated list, dropping empty items.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesS3 reports whether proof photos go to S3-compatible storage.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:     c.AppName,
		AppEnv:      c.AppEnv,
		AppURL:      c.AppURL,
		Port:        c.Port,
		AppTimezone: c.AppTimezone,

		DBDriver: c.DBDriver,

		EmailFrom: c.EmailFrom,

		S3Region:   c.S3Region,
		S3Bucket:   c.S3Bucket,
		S3Endpoint: c.S3Endpoint,

		VerifyModels:        c.VerifyModels,
		VerifyAutoApprove:   c.VerifyAutoApprove,
		VerifyTimeout:       c.VerifyTimeout,
		ReminderInterval:    c.ReminderInterval,
		SubmitRatePerMinute: c.SubmitRatePerMinute,
	}
}
