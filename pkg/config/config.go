// Package config provides configuration management for the accounting agent.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server Server
	Ledger Ledger
	VLM    VLM
	Fava   Fava
	Debug  bool
}

// Server represents HTTP server and authentication configuration.
type Server struct {
	Addr     string
	Username string
	Password string
}

// Ledger represents ledger file configuration.
type Ledger struct {
	Root        string
	MainPath    string // read-only declarations file; defaults to {Root}/main.beancount
	CatalogPath string // optional YAML catalog override
	DBPath      string // posting history database
	TokenDBPath string // auth token database
	Currency    string
}

// VLM represents the vision/language classifier configuration.
type VLM struct {
	APIKey string
	Model  string
}

// Fava represents the fava visualization tool configuration.
type Fava struct {
	Command string
	Port    int
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	favaPort, err := parseIntEnv("FAVA_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid FAVA_PORT: %w", err)
	}

	config := &Config{
		Server: Server{
			Addr:     getEnvOrDefault("SERVER_ADDR", ":8000"),
			Username: os.Getenv("AUTH_USERNAME"),
			Password: os.Getenv("AUTH_PASSWORD"),
		},
		Ledger: Ledger{
			Root:        getEnvOrDefault("LEDGER_ROOT", "./ledger"),
			MainPath:    os.Getenv("LEDGER_MAIN_PATH"),
			CatalogPath: os.Getenv("LEDGER_CATALOG_PATH"),
			DBPath:      os.Getenv("LEDGER_DB_PATH"),
			TokenDBPath: os.Getenv("LEDGER_TOKEN_DB_PATH"),
			Currency:    getEnvOrDefault("LEDGER_CURRENCY", "CNY"),
		},
		VLM: VLM{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Fava: Fava{
			Command: getEnvOrDefault("FAVA_COMMAND", "fava"),
			Port:    favaPort,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "server":
			switch path[1] {
			case "addr":
				value = c.Server.Addr
			case "username":
				value = c.Server.Username
			case "password":
				value = c.Server.Password
			}
		case "ledger":
			switch path[1] {
			case "root":
				value = c.Ledger.Root
			case "currency":
				value = c.Ledger.Currency
			}
		case "vlm":
			switch path[1] {
			case "apiKey":
				value = c.VLM.APIKey
			case "model":
				value = c.VLM.Model
			}
		case "fava":
			switch path[1] {
			case "command":
				value = c.Fava.Command
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
