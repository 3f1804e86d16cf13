package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Draft     DraftConfig
	Export    ExportConfig
	Import    ImportConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port address.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DraftConfig holds wizard draft persistence settings.
type DraftConfig struct {
	SaveDebounce time.Duration `mapstructure:"save_debounce"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// ExportConfig holds export rendering and job worker settings.
type ExportConfig struct {
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	Concurrency      int    `mapstructure:"concurrency"`
	JobTimeoutSecs   int    `mapstructure:"job_timeout_secs"`
	MaxRows          int    `mapstructure:"max_rows"`
	ChromeRemoteURL  string `mapstructure:"chrome_remote_url"`
	ChromeNoSandbox  bool   `mapstructure:"chrome_no_sandbox"`
	KeyPrefix        string `mapstructure:"key_prefix"`
}

// ImportConfig holds bulk import limits.
type ImportConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	MaxRows       int   `mapstructure:"max_rows"`
}

// RateLimitConfig holds per-business request rate limits.
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	EntryTTL          time.Duration `mapstructure:"entry_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LEDGERBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEDGERBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ledgerbook")
	v.SetDefault("db.password", "ledgerbook_secret")
	v.SetDefault("db.name", "ledgerbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "ledgerbook")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "ledgerbook-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Draft defaults
	v.SetDefault("draft.save_debounce", "750ms")
	v.SetDefault("draft.ttl", "72h")

	// Export defaults
	v.SetDefault("export.poll_interval_secs", 5)
	v.SetDefault("export.concurrency", 2)
	v.SetDefault("export.job_timeout_secs", 300)
	v.SetDefault("export.max_rows", 10000)
	v.SetDefault("export.chrome_remote_url", "")
	v.SetDefault("export.chrome_no_sandbox", false)
	v.SetDefault("export.key_prefix", "exports")

	// Import defaults
	v.SetDefault("import.max_file_size_mb", 10)
	v.SetDefault("import.max_rows", 5000)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@ledgerbook.app")
	v.SetDefault("email.from_name", "Ledgerbook")

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.entry_ttl", "10m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "LEDGERBOOK_SERVER_PORT",
		"server.read_timeout":             "LEDGERBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "LEDGERBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":              "LEDGERBOOK_SERVER_ENVIRONMENT",
		"db.host":                         "LEDGERBOOK_DB_HOST",
		"db.port":                         "LEDGERBOOK_DB_PORT",
		"db.user":                         "LEDGERBOOK_DB_USER",
		"db.password":                     "LEDGERBOOK_DB_PASSWORD",
		"db.name":                         "LEDGERBOOK_DB_NAME",
		"db.sslmode":                      "LEDGERBOOK_DB_SSLMODE",
		"db.max_open":                     "LEDGERBOOK_DB_MAX_OPEN",
		"db.max_idle":                     "LEDGERBOOK_DB_MAX_IDLE",
		"jwt.secret":                      "LEDGERBOOK_JWT_SECRET",
		"jwt.access_expiry":               "LEDGERBOOK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":              "LEDGERBOOK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                      "LEDGERBOOK_JWT_ISSUER",
		"s3.region":                       "LEDGERBOOK_S3_REGION",
		"s3.bucket":                       "LEDGERBOOK_S3_BUCKET",
		"s3.endpoint":                     "LEDGERBOOK_S3_ENDPOINT",
		"s3.access_key":                   "LEDGERBOOK_S3_ACCESS_KEY",
		"s3.secret_key":                   "LEDGERBOOK_S3_SECRET_KEY",
		"s3.presign_expiry":               "LEDGERBOOK_S3_PRESIGN_EXPIRY",
		"log.level":                       "LEDGERBOOK_LOG_LEVEL",
		"log.format":                      "LEDGERBOOK_LOG_FORMAT",
		"cors.allowed_origins":            "LEDGERBOOK_CORS_ALLOWED_ORIGINS",
		"redis.host":                      "LEDGERBOOK_REDIS_HOST",
		"redis.port":                      "LEDGERBOOK_REDIS_PORT",
		"redis.password":                  "LEDGERBOOK_REDIS_PASSWORD",
		"redis.db":                        "LEDGERBOOK_REDIS_DB",
		"draft.save_debounce":             "LEDGERBOOK_DRAFT_SAVE_DEBOUNCE",
		"draft.ttl":                       "LEDGERBOOK_DRAFT_TTL",
		"export.poll_interval_secs":       "LEDGERBOOK_EXPORT_POLL_INTERVAL_SECS",
		"export.concurrency":              "LEDGERBOOK_EXPORT_CONCURRENCY",
		"export.job_timeout_secs":         "LEDGERBOOK_EXPORT_JOB_TIMEOUT_SECS",
		"export.max_rows":                 "LEDGERBOOK_EXPORT_MAX_ROWS",
		"export.chrome_remote_url":        "LEDGERBOOK_EXPORT_CHROME_REMOTE_URL",
		"export.chrome_no_sandbox":        "LEDGERBOOK_EXPORT_CHROME_NO_SANDBOX",
		"export.key_prefix":               "LEDGERBOOK_EXPORT_KEY_PREFIX",
		"import.max_file_size_mb":         "LEDGERBOOK_IMPORT_MAX_FILE_SIZE_MB",
		"import.max_rows":                 "LEDGERBOOK_IMPORT_MAX_ROWS",
		"email.provider":                  "LEDGERBOOK_EMAIL_PROVIDER",
		"email.region":                    "LEDGERBOOK_EMAIL_REGION",
		"email.from_address":              "LEDGERBOOK_EMAIL_FROM_ADDRESS",
		"email.from_name":                 "LEDGERBOOK_EMAIL_FROM_NAME",
		"rate_limit.requests_per_second":  "LEDGERBOOK_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":                "LEDGERBOOK_RATE_LIMIT_BURST",
		"rate_limit.entry_ttl":            "LEDGERBOOK_RATE_LIMIT_ENTRY_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if LEDGERBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEDGERBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("redis.host"),
		Port:     v.GetInt("redis.port"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}

	cfg.Draft = DraftConfig{
		SaveDebounce: v.GetDuration("draft.save_debounce"),
		TTL:          v.GetDuration("draft.ttl"),
	}

	cfg.Export = ExportConfig{
		PollIntervalSecs: v.GetInt("export.poll_interval_secs"),
		Concurrency:      v.GetInt("export.concurrency"),
		JobTimeoutSecs:   v.GetInt("export.job_timeout_secs"),
		MaxRows:          v.GetInt("export.max_rows"),
		ChromeRemoteURL:  v.GetString("export.chrome_remote_url"),
		ChromeNoSandbox:  v.GetBool("export.chrome_no_sandbox"),
		KeyPrefix:        v.GetString("export.key_prefix"),
	}

	cfg.Import = ImportConfig{
		MaxFileSizeMB: v.GetInt64("import.max_file_size_mb"),
		MaxRows:       v.GetInt("import.max_rows"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
		EntryTTL:          v.GetDuration("rate_limit.entry_ttl"),
	}

	return cfg, nil
}
