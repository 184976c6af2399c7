package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-dev/almacen-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvSobrescribeDefaults(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "3000")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 3000, cfg.HTTP.Port)
}

func TestLoad_PuertoNoNumericoFalla(t *testing.T) {
	t.Setenv("DB_PORT", "cincomil")

	_, err := config.Load()
	require.Error(t, err, "un puerto mal formado no debe convertirse en cero en silencio")
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestLoad_HTTPPortNoNumericoFalla(t *testing.T) {
	t.Setenv("HTTP_PORT", "80a")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestDSN_CodificaCaracteresEspeciales(t *testing.T) {
	db := config.DBConfig{
		Host: "localhost", Port: 5432,
		User: "postgres", Password: "p@ss:word",
		DBName: "almacen", SSLMode: "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgresql://u:p@db:5432/x?sslmode=require",
		Host:        "ignored",
	}
	assert.Equal(t, "postgresql://u:p@db:5432/x?sslmode=require", db.ConnectionString())
}
