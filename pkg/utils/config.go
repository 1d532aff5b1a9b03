package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Rental   RentalConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RentalConfig struct {
	// SequenceCode keys the booking reference sequence (RENT-00042).
	SequenceCode string
	// DefaultCompanyID scopes requests that carry no X-Company-ID header.
	DefaultCompanyID string
	// ReconcileIntervalMinutes drives the overdue-booking scan.
	ReconcileIntervalMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RENTAL_SEQUENCE_CODE", "rent")
	viper.SetDefault("RECONCILE_INTERVAL_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Rental: RentalConfig{
			SequenceCode:             viper.GetString("RENTAL_SEQUENCE_CODE"),
			DefaultCompanyID:         viper.GetString("DEFAULT_COMPANY_ID"),
			ReconcileIntervalMinutes: viper.GetInt("RECONCILE_INTERVAL_MINUTES"),
		},
	}

	return config, nil
}
