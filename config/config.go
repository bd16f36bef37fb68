package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Google Calendar configuration.
	CalendarID string `mapstructure:"CALENDAR_ID"`

	// Service-account credential used for the JWT-bearer grant.
	GoogleClientEmail string `mapstructure:"GOOGLE_CLIENT_EMAIL"`
	GoogleProjectID   string `mapstructure:"GOOGLE_PROJECT_ID"`
	GooglePrivateKey  string `mapstructure:"GOOGLE_PRIVATE_KEY"`
	GoogleTokenURI    string `mapstructure:"GOOGLE_TOKEN_URI"`
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
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("GOOGLE_CLIENT_EMAIL", "")
	viper.SetDefault("GOOGLE_PROJECT_ID", "")
	viper.SetDefault("GOOGLE_PRIVATE_KEY", "")
	viper.SetDefault("GOOGLE_TOKEN_URI", "https://oauth2.googleapis.com/token")

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
