// Package config reads process settings from the environment.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	ApiPort      int
	MetricsPort  int
	LogLevel     string
	LogFormat    string
	MaxNodes     int
	DefaultNodes int
	RandSeed     int64
}

/*
export API_PORT=8080
export METRICS_PORT=9090
export LOG_LEVEL=info
export LOG_FORMAT=json
export MAX_NODES=30
export DEFAULT_NODES=5
export RAND_SEED=0
./bin/paxossim-server
*/
func FromEnv() Config {
	cfg := Config{
		ApiPort:      GetEnvInt("API_PORT", 8080),
		MetricsPort:  GetEnvInt("METRICS_PORT", 9090),
		LogLevel:     GetEnvString("LOG_LEVEL", "info"),
		LogFormat:    GetEnvString("LOG_FORMAT", "json"),
		MaxNodes:     GetEnvInt("MAX_NODES", 30),
		DefaultNodes: GetEnvInt("DEFAULT_NODES", 5),
		RandSeed:     GetEnvInt64("RAND_SEED", 0),
	}
	if cfg.MaxNodes < 1 {
		cfg.MaxNodes = 1
	}
	if cfg.DefaultNodes < 1 || cfg.DefaultNodes > cfg.MaxNodes {
		cfg.DefaultNodes = cfg.MaxNodes
	}
	return cfg
}

// GetEnvInt returns the integer value of key, or defaultValue when the
// variable is unset or not a number.
func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
