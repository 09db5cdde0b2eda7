// Package config reads configuration from TODO_-prefixed environment
// variables into an explicit struct, so components can be constructed
// with different configurations side by side.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends for the local blob.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	// Mode selection.
	UseRemote  bool   // TODO_USE_REMOTE
	APIBaseURL string // TODO_API_BASE_URL, required in remote mode

	// Local blob store.
	StorageBackend string // TODO_STORAGE_BACKEND: "file" (default) or "redis"
	StoragePath    string // TODO_STORAGE_PATH, file backend
	RedisAddr      string // TODO_REDIS_ADDR, redis backend
	StorageKey     string // TODO_STORAGE_KEY, redis key name
	SeedDemo       bool   // TODO_SEED_DEMO: seed demo tasks on first empty read

	// HTTP surface.
	APIPort string // TODO_API_PORT

	// Mutation event log; both empty disables events.
	KafkaBroker string // TODO_KAFKA_BROKER
	KafkaTopic  string // TODO_KAFKA_TOPIC
}

func Load() (*Config, error) {
	viper.SetEnvPrefix("TODO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("STORAGE_BACKEND", BackendFile)
	viper.SetDefault("STORAGE_PATH", "todos.json")
	viper.SetDefault("STORAGE_KEY", "todos:collection")
	viper.SetDefault("API_PORT", "8080")

	cfg := &Config{
		UseRemote:      viper.GetBool("USE_REMOTE"),
		APIBaseURL:     viper.GetString("API_BASE_URL"),
		StorageBackend: viper.GetString("STORAGE_BACKEND"),
		StoragePath:    viper.GetString("STORAGE_PATH"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		StorageKey:     viper.GetString("STORAGE_KEY"),
		SeedDemo:       viper.GetBool("SEED_DEMO"),
		APIPort:        viper.GetString("API_PORT"),
		KafkaBroker:    viper.GetString("KAFKA_BROKER"),
		KafkaTopic:     viper.GetString("KAFKA_TOPIC"),
	}

	if cfg.UseRemote && cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("TODO_API_BASE_URL is required when TODO_USE_REMOTE is set")
	}
	if cfg.StorageBackend != BackendFile && cfg.StorageBackend != BackendRedis {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == BackendRedis && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("TODO_REDIS_ADDR is required for the redis backend")
	}

	return cfg, nil
}
