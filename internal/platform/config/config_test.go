package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "dental-clinic-app", cfg.JWTIssuer)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, "1", cfg.DiscrepancyTolerance.String())
	assert.Equal(t, "cash_register_events", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.ElementsMatch(t, []string{"PGSQL_URL", "JWT_SECRET"}, cfg.Missing())
}

func TestFromViper_Overrides(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]any{
		"PGSQL_URL":             "postgres://localhost/clinic",
		"JWT_SECRET":            "s3cret",
		"JWT_EXPIRY_DURATION":   "30m",
		"DISCREPANCY_TOLERANCE": "0.50",
		"KAFKA_BROKERS":         "kafka-1:9092, kafka-2:9092,",
		"CORS_ALLOWED_ORIGINS":  "https://clinic.example,https://admin.clinic.example",
		"CLINIC_TIMEZONE":       "UTC",
	}))

	assert.Empty(t, cfg.Missing())
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "0.5", cfg.DiscrepancyTolerance.String())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
	require.NotNil(t, cfg.ClinicLocation)
	assert.Equal(t, "UTC", cfg.ClinicLocation.String())
}

func TestFromViper_InvalidValuesFallBack(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]any{
		"JWT_EXPIRY_DURATION":   "forever",
		"DISCREPANCY_TOLERANCE": "-3",
		"CLINIC_TIMEZONE":       "Mars/Olympus_Mons",
	}))

	assert.Equal(t, 8*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "1", cfg.DiscrepancyTolerance.String())
	assert.Equal(t, time.UTC, cfg.ClinicLocation)
}
