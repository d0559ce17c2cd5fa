// Package config loads runtime configuration: environment variables
// for the backend (fail-fast on bad values) and an optional YAML file
// for client settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// ServerConfig holds everything the backend needs at startup.
type ServerConfig struct {
	Port            string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	// UseMemoryStore runs the backend without MongoDB; handy for
	// local development and the test suite.
	UseMemoryStore bool
}

// LoadServer reads backend settings from the environment. A .env file
// in the working directory is honored when present.
func LoadServer() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Port:            getEnv("PORT", "8000"),
		MongoURI:        getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "job_tracker"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "jobs"),
	}

	if s := os.Getenv("USE_MEMORY_STORE"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("USE_MEMORY_STORE must be a boolean, got %q", s)
		}
		cfg.UseMemoryStore = v
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

// ClientConfig holds the capture-side settings.
type ClientConfig struct {
	BackendURL       string `yaml:"backend_url"`
	ProxyURL         string `yaml:"proxy_url"`
	DataDir          string `yaml:"data_dir"`
	WatchIntervalSec int    `yaml:"watch_interval_sec"`
}

// WatchInterval returns the poll interval as a duration.
func (c *ClientConfig) WatchInterval() time.Duration {
	return time.Duration(c.WatchIntervalSec) * time.Second
}

// DefaultClient returns the built-in client settings.
func DefaultClient() *ClientConfig {
	return &ClientConfig{
		BackendURL:       "http://localhost:8000/api",
		DataDir:          defaultDataDir(),
		WatchIntervalSec: 30,
	}
}

// LoadClient reads the YAML config at path, filling unset fields with
// defaults. An empty path or missing file yields the defaults.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := DefaultClient()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg ClientConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.BackendURL != "" {
		cfg.BackendURL = fileCfg.BackendURL
	}
	if fileCfg.ProxyURL != "" {
		cfg.ProxyURL = fileCfg.ProxyURL
	}
	if fileCfg.DataDir != "" {
		cfg.DataDir = fileCfg.DataDir
	}
	if fileCfg.WatchIntervalSec > 0 {
		cfg.WatchIntervalSec = fileCfg.WatchIntervalSec
	}
	return cfg, nil
}

func defaultDataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".jobstash")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
