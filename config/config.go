// Package config reads service configuration from the environment.
// Values come from the process environment (optionally seeded from a .env
// file by the entry point); every key has a working default so the server
// runs with zero configuration in development.
package config

import (
	"os"
	"strconv"
)

// Config is the resolved service configuration.
type Config struct {
	ServerPort  int
	DBPath      string
	RulesPath   string // optional JSON rule-set override; empty = built-in tables
	AdvisorURL  string // optional narrative-advice endpoint; empty = disabled
	LogLevel    string
	LogAsJSON   bool
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		DBPath:     getEnvString("DB_PATH", "payroll.db"),
		RulesPath:  getEnvString("RULES_PATH", ""),
		AdvisorURL: getEnvString("ADVISOR_URL", ""),
		LogLevel:   getEnvString("LOG_LEVEL", "info"),
		LogAsJSON:  getEnvBool("LOG_JSON", false),
	}
}

// helper function to read an environment value or return a default
func getEnvString(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
