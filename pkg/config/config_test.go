package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.15", cfg.Hiring.TaxRate.String())
	assert.Equal(t, "50", cfg.Hiring.LatePenaltyRate.String())
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.Jobs.IntervalMinutes)
	assert.Zero(t, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HIRE_TAX_RATE", "0.145")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.145", cfg.Hiring.TaxRate.String())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "localhost:9090", config.HTTPConfig{Host: "localhost", Port: 9090}.Addr())
}

func TestLoad_TasaInvalida(t *testing.T) {
	t.Setenv("HIRE_TAX_RATE", "quince")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "fm", Password: "p@ss:w/rd", DBName: "formmaster", SSLMode: "disable"}
	assert.Equal(t, "postgres://fm:p%40ss%3Aw%2Frd@db:5432/formmaster?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
