package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigLocalDefaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_DRIVER", "mysql")
	t.Setenv("LOCAL_DB_PORT", "3306")
	t.Setenv("DASHBOARD_STRICT_ROLE", "true")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.True(t, cfg.DashboardStrictRole)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Contains(t, cfg.GetDSN(), "@tcp(localhost:3306)/lunchbox_express")
}

func TestLoadConfigUnknownEnvFallsBackToLocal(t *testing.T) {
	t.Setenv("ENV_TYPE", "staging")
	t.Setenv("LOCAL_DB_NAME", "lunch_test")

	cfg := LoadConfig()

	assert.Equal(t, "LOCAL", cfg.EnvType)
	assert.Equal(t, "lunch_test", cfg.DBName)
	assert.Contains(t, cfg.GetDSN(), "dbname=lunch_test")
}

func TestLoadConfigServerRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENV_TYPE", "SERVER")
	t.Setenv("JWT_SECRET_KEY", "")

	assert.Panics(t, func() { LoadConfig() })
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := &Config{TimeZone: "Not/AZone"}
	assert.Equal(t, time.Local, cfg.Location())

	cfg.TimeZone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}
