package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds service configuration. The 12-hour retention window is a
// process-wide domain constant and deliberately not configurable here.
type Config struct {
	Server ServerConfig  `json:"server" yaml:"server"`
	App    AppConfig     `json:"app" yaml:"app"`
	Auth   AuthConfig    `json:"auth" yaml:"auth"`
	Store  StoreConfig   `json:"store" yaml:"store"`
	Redis  RedisConfig   `json:"redis" yaml:"redis"`
	Logger logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type AppConfig struct {
	NodeID        int64  `json:"node_id" yaml:"node_id"`
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	MaxUploadSize int64  `json:"max_upload_size" yaml:"max_upload_size"`

	ProcessingDelayMS  int `json:"processing_delay_ms" yaml:"processing_delay_ms"`
	SweepIntervalS     int `json:"sweep_interval_s" yaml:"sweep_interval_s"`
	StaleProcessingS   int `json:"stale_processing_s" yaml:"stale_processing_s"`
	PayloadGraceS      int `json:"payload_grace_s" yaml:"payload_grace_s"`
	BackgroundWorkers  int `json:"background_workers" yaml:"background_workers"`
	BackgroundQueueLen int `json:"background_queue_len" yaml:"background_queue_len"`
}

type AuthConfig struct {
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret"`
}

type StoreConfig struct {
	// Backend selects the resource store: "redis" or "memory".
	Backend string `json:"backend" yaml:"backend"`
	// MemScanIntervalMS is the memory backend's TTL sweep period.
	MemScanIntervalMS int `json:"mem_scan_interval_ms" yaml:"mem_scan_interval_ms"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8090",
		},
		App: AppConfig{
			NodeID:             1,
			DataDir:            "uploads",
			MaxUploadSize:      50 * 1024 * 1024, // 50MB
			ProcessingDelayMS:  2000,
			SweepIntervalS:     3600, // hourly
			StaleProcessingS:   600,
			PayloadGraceS:      3600,
			BackgroundWorkers:  4,
			BackgroundQueueLen: 256,
		},
		Auth: AuthConfig{
			JWTSecret: "",
		},
		Store: StoreConfig{
			Backend:           "redis",
			MemScanIntervalMS: 30000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// explicit path was given.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
