package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()

		cfg := Load()

		assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.API.Timeout)
		assert.Equal(t, 10, cfg.API.DefaultPageSize)
		assert.Equal(t, "effectiveDate,desc", cfg.API.DefaultSort)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, "pennywise", cfg.Redis.Prefix)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.DatabaseURL)
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("api.base_url", "https://finance.example.com/api")
		viper.Set("api.timeout", "5s")
		viper.Set("api.page_size", 25)
		viper.Set("jwt.expiry_hours", 2)

		cfg := Load()

		assert.Equal(t, "https://finance.example.com/api", cfg.API.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.API.Timeout)
		assert.Equal(t, 25, cfg.API.DefaultPageSize)
		assert.Equal(t, 2, cfg.JWT.ExpiryHours)
	})

	t.Run("invalid page size falls back", func(t *testing.T) {
		viper.Reset()
		viper.Set("api.page_size", -3)

		cfg := Load()

		assert.Equal(t, 10, cfg.API.DefaultPageSize)
	})
}
