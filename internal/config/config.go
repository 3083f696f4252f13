package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds settings shared by the client and the development server
type Config struct {
	API         APIConfig
	Redis       RedisConfig
	JWT         JWTConfig
	LogLevel    string
	Port        string
	DatabaseURL string
}

// APIConfig configures the remote resource client
type APIConfig struct {
	BaseURL         string
	Token           string
	Timeout         time.Duration
	DefaultPageSize int
	DefaultSort     string
}

// RedisConfig configures the preference store
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// JWTConfig configures dev token signing and verification
type JWTConfig struct {
	SecretKey   string
	ExpiryHours int
}

// Init reads .env and binds environment variables. Missing files are not an
// error.
func Init() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("api.base_url", "API_BASE_URL")
	viper.BindEnv("api.token", "API_TOKEN")
	viper.BindEnv("api.timeout", "API_TIMEOUT")
	viper.BindEnv("api.page_size", "PAGE_SIZE")
	viper.BindEnv("api.sort", "DEFAULT_SORT")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("redis.prefix", "REDIS_PREFIX")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")

	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}
}

// Load returns the configuration with defaults applied.
func Load() *Config {
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.page_size", 10)
	viper.SetDefault("api.sort", "effectiveDate,desc")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "pennywise")

	viper.SetDefault("jwt.secret_key", "dev-secret-change-me")
	viper.SetDefault("jwt.expiry_hours", 24)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.url", "")

	pageSize := viper.GetInt("api.page_size")
	if pageSize <= 0 {
		log.Printf("WARNING: invalid page size %d, using 10", pageSize)
		pageSize = 10
	}

	return &Config{
		API: APIConfig{
			BaseURL:         viper.GetString("api.base_url"),
			Token:           viper.GetString("api.token"),
			Timeout:         viper.GetDuration("api.timeout"),
			DefaultPageSize: pageSize,
			DefaultSort:     viper.GetString("api.sort"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetString("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			Prefix:   viper.GetString("redis.prefix"),
		},
		JWT: JWTConfig{
			SecretKey:   viper.GetString("jwt.secret_key"),
			ExpiryHours: viper.GetInt("jwt.expiry_hours"),
		},
		LogLevel:    viper.GetString("log.level"),
		Port:        viper.GetString("server.port"),
		DatabaseURL: viper.GetString("database.url"),
	}
}
