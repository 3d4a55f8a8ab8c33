package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	LoginRateLimit     string

	// Clinic rules
	ClinicLocation       *time.Location
	DiscrepancyTolerance decimal.Decimal

	// Event fan-out; both are optional.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	KafkaTopic    string
}

// Missing lists required settings that are not set. A non-empty result puts the
// server into configuration-error mode instead of refusing to start.
func (c *Config) Missing() []string {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "PGSQL_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	return missing
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "8h")
	v.SetDefault("JWT_ISSUER", "dental-clinic-app")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CLINIC_TIMEZONE", "America/Lima")
	v.SetDefault("DISCREPANCY_TOLERANCE", "1.00")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "cash_register_events")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		LoginRateLimit: v.GetString("LOGIN_RATE_LIMIT"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		KafkaTopic:     v.GetString("KAFKA_TOPIC"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set; API will answer 503 until it is configured")
	}
	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL not set; API will answer 503 until it is configured")
	}

	// Load JWT Expiry Duration (e.g., "60m", "8h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 8 * time.Hour
		slog.Warn("Invalid JWT_EXPIRY_DURATION, using default",
			slog.String("value", jwtExpiryStr), slog.String("default", jwtExpiryDuration.String()))
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	tz := v.GetString("CLINIC_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("Invalid CLINIC_TIMEZONE, using UTC", slog.String("value", tz), slog.String("error", err.Error()))
		loc = time.UTC
	}
	cfg.ClinicLocation = loc

	tolStr := v.GetString("DISCREPANCY_TOLERANCE")
	tol, err := decimal.NewFromString(tolStr)
	if err != nil || tol.IsNegative() {
		slog.Warn("Invalid DISCREPANCY_TOLERANCE, using 1.00", slog.String("value", tolStr))
		tol = decimal.RequireFromString("1.00")
	}
	cfg.DiscrepancyTolerance = tol

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.KafkaBrokers = splitList(v.GetString("KAFKA_BROKERS"))

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
