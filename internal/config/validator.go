package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// example values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// PostgresEnvVars fall back to local defaults when unset, which is only
// reasonable in development.
var PostgresEnvVars = []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"}

// CheckEnv inspects the raw environment for deployment mistakes that Load
// tolerates. A schema version mismatch or a missing API_KEY is an error;
// everything else is returned as a warning for the caller to log.
func CheckEnv() ([]string, error) {
	var warnings []string

	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		warnings = append(warnings, fmt.Sprintf("ENV_SCHEMA_VERSION is not set, assuming %s", ExpectedEnvSchemaVersion))
	default:
		return nil, fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s; compare your .env with .env.example",
			ExpectedEnvSchemaVersion, v)
	}

	if os.Getenv("API_KEY") == "" {
		return nil, fmt.Errorf("API_KEY must be set")
	}
	if os.Getenv("API_KEY") == exampleAPIKey {
		warnings = append(warnings, "API_KEY is the example value; generate one with: openssl rand -hex 32")
	}

	switch strings.ToLower(getEnv("STORAGE_DRIVER", DefaultStorageDriver)) {
	case StorageDriverPostgres:
		var unset []string
		for _, key := range PostgresEnvVars {
			if os.Getenv(key) == "" {
				unset = append(unset, key)
			}
		}
		if len(unset) > 0 {
			warnings = append(warnings, "using default database settings for "+strings.Join(unset, ", "))
		}
		if os.Getenv("DB_PASSWORD") == exampleDBPassword {
			warnings = append(warnings, "DB_PASSWORD is the example value")
		}
	case StorageDriverMemory:
		warnings = append(warnings, "STORAGE_DRIVER=memory, farms are lost on restart")
	}

	return warnings, nil
}
