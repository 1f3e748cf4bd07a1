package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisTravelCacheDB   int    `mapstructure:"REDIS_TRAVEL_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google Maps API key for the travel-time provider.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Travel estimation tuning.
	TravelTimeoutSeconds  int `mapstructure:"TRAVEL_TIMEOUT_SECONDS"`
	TravelCallsPerSecond  int `mapstructure:"TRAVEL_CALLS_PER_SECOND"`
	TravelCacheTTLMinutes int `mapstructure:"TRAVEL_CACHE_TTL_MINUTES"`

	// Scheduling defaults.
	GraceBufferMinutes     int    `mapstructure:"GRACE_BUFFER_MINUTES"`
	SlotGranularityMinutes int    `mapstructure:"SLOT_GRANULARITY_MINUTES"`
	HomeBaseAddress        string `mapstructure:"HOME_BASE_ADDRESS"`
	WorkDayStart           string `mapstructure:"WORK_DAY_START"`
	WorkDayEnd             string `mapstructure:"WORK_DAY_END"`

	// Lead time before the computed departure at which the reminder fires.
	DepartureReminderLeadMinutes int `mapstructure:"DEPARTURE_REMINDER_LEAD_MINUTES"`
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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_TRAVEL_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("TRAVEL_TIMEOUT_SECONDS", 5)
	viper.SetDefault("TRAVEL_CALLS_PER_SECOND", 10)
	viper.SetDefault("TRAVEL_CACHE_TTL_MINUTES", 15)
	viper.SetDefault("GRACE_BUFFER_MINUTES", 5)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 15)
	viper.SetDefault("HOME_BASE_ADDRESS", "")
	viper.SetDefault("WORK_DAY_START", "09:00")
	viper.SetDefault("WORK_DAY_END", "17:00")
	viper.SetDefault("DEPARTURE_REMINDER_LEAD_MINUTES", 10)

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
