package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type TrackingConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	TrackingDB   `yaml:"tracking_db"`
	LogConfig    `yaml:"log_config"`
	GaNetAPI     `yaml:"ganet_api"`
	KafkaService `yaml:"kafka_service"`
	Tracking     `yaml:"tracking"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TrackingDB struct {
	Dsn string `yaml:"dsn"`
	// MigrationsPath, when set, runs SQL migrations on startup instead of
	// relying on AutoMigrate alone.
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type GaNetAPI struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key" env:"GANET_API_KEY"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Tracking struct {
	// TagTTL of zero creates tags without an expire time.
	TagTTL          time.Duration `yaml:"tag_ttl" env-default:"720h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env-default:"1h"`
	SyncInterval    time.Duration `yaml:"sync_interval" env-default:"15m"`
}

func MustLoad() *TrackingConfig {

	// Processing env config variable and file
	configPath := os.Getenv("TRACKING_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TRACKING_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg TrackingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
