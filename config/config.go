package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIBaseURL      string  `mapstructure:"API_BASE_URL"`
	Env             string  `mapstructure:"ENV"`
	LogLevel        string  `mapstructure:"LOG_LEVEL"`
	HTTPTimeoutSecs int     `mapstructure:"HTTP_TIMEOUT_SECS"`
	MaxDistanceKm   float64 `mapstructure:"MAX_DISTANCE_KM"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Fixed device coordinate for location search; both zero means the
	// machine has no location source.
	LocationLat float64 `mapstructure:"LOCATION_LAT"`
	LocationLng float64 `mapstructure:"LOCATION_LNG"`

	// Session storage.
	SessionBackend string `mapstructure:"SESSION_BACKEND"`
	SessionFile    string `mapstructure:"SESSION_FILE"`

	// Redis configuration (session backend "redis").
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// MongoDB configuration (seed tool).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_TIMEOUT_SECS", 15)
	viper.SetDefault("MAX_DISTANCE_KM", 50)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("LOCATION_LAT", 0)
	viper.SetDefault("LOCATION_LNG", 0)
	viper.SetDefault("SESSION_BACKEND", "file")
	viper.SetDefault("SESSION_FILE", ".carelink-session.json")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "carelink")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
