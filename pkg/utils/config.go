package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Notify   NotifyConfig
	Dispatch DispatchConfig
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

type NotifyConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

type DispatchConfig struct {
	NearbyLimit    int
	MaxNearbyLimit int
	CandidateCap   int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("NEARBY_LIMIT", 30)
	viper.SetDefault("NEARBY_MAX_LIMIT", 100)
	viper.SetDefault("NEARBY_CANDIDATE_CAP", 200)

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
		Notify: NotifyConfig{
			WebhookURL:     viper.GetString("NOTIFY_WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt("NOTIFY_TIMEOUT_SECONDS"),
		},
		Dispatch: DispatchConfig{
			NearbyLimit:    viper.GetInt("NEARBY_LIMIT"),
			MaxNearbyLimit: viper.GetInt("NEARBY_MAX_LIMIT"),
			CandidateCap:   viper.GetInt("NEARBY_CANDIDATE_CAP"),
		},
	}

	return config, nil
}
