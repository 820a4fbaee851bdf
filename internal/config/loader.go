package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the assistant service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	SessionTTL       time.Duration
	LookupCacheTTL   time.Duration
	MaxCommandLength int
	AdminEmail       string
	AdminPassword    string
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// provided values and reporting localized error messages for bad entries.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:assistant.db?_foreign_keys=on",
		SessionTTL:       24 * time.Hour,
		LookupCacheTTL:   30 * time.Second,
		MaxCommandLength: 500,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("HR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("HR_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "HR_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("HR_LOOKUP_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "HR_LOOKUP_CACHE_TTL")
		} else {
			cfg.LookupCacheTTL = ttl
		}
	}

	if lengthValue := strings.TrimSpace(os.Getenv("HR_MAX_COMMAND_LENGTH")); lengthValue != "" {
		length, err := strconv.Atoi(lengthValue)
		if err != nil || length <= 0 {
			invalid = append(invalid, "HR_MAX_COMMAND_LENGTH")
		} else {
			cfg.MaxCommandLength = length
		}
	}

	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(os.Getenv("HR_ADMIN_EMAIL")))
	cfg.AdminPassword = os.Getenv("HR_ADMIN_PASSWORD")
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		invalid = append(invalid, "HR_ADMIN_EMAIL, HR_ADMIN_PASSWORD")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valores de variables de entorno no válidos: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
