// internal/config/config.go
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Transport   string
	Host        string
	Port        int
	DBPath      string
	CatalogPath string
	LogMode     string

	GatewayURL     string
	GatewayAPIKey  string
	Model          string
	GatewayTimeout time.Duration
}

// Load reads an optional .env file and then the process environment. A
// missing .env is not an error; values already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Transport:   str("MEAL_PLAN_TRANSPORT", "http"),
		Host:        str("MEAL_PLAN_HOST", "0.0.0.0"),
		Port:        integer("MEAL_PLAN_PORT", 8011),
		DBPath:      str("MEAL_PLAN_DB_PATH", "/data/meal-plan.db"),
		CatalogPath: str("MEAL_PLAN_CATALOG_PATH", ""),
		LogMode:     str("LOG_MODE", "dev"),

		GatewayURL:     str("MCP_PROXY_URL", "http://mcp-compose-http-proxy:9876"),
		GatewayAPIKey:  str("MCP_PROXY_API_KEY", ""),
		Model:          str("OPENROUTER_MODEL", "anthropic/claude-3.5-sonnet"),
		GatewayTimeout: duration("GATEWAY_TIMEOUT", 60*time.Second),
	}, nil
}

func str(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func integer(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func duration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
