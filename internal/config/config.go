package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	plog "pagu/internal/log"
)

type Config struct {
	// Backend selection
	DataBackend string

	// Google Sheets
	SpreadsheetURL     string
	ServiceAccountJSON string
	ServiceAccountFile string

	// Local workbook
	XLSXPath string

	// Memory backend: one CSV per worksheet
	MemoryDir string

	// Run log, disabled when empty
	RunLogDBPath string

	LogLevel string
}

func Load() *Config {
	return &Config{
		DataBackend: getEnv("DATA_BACKEND", "sheets"),

		SpreadsheetURL:     getEnv("PAGU_SPREADSHEET_URL", ""),
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),

		XLSXPath:  getEnv("PAGU_XLSX_PATH", ""),
		MemoryDir: getEnv("PAGU_MEMORY_DIR", "data"),

		RunLogDBPath: getEnv("RUN_LOG_DB_PATH", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sheets", "xlsx", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "sheets":
		if c.SpreadsheetURL == "" {
			errors = append(errors, "PAGU_SPREADSHEET_URL is required when using sheets backend")
		}
		hasFile := c.ServiceAccountFile != ""
		if !hasFile && c.ServiceAccountJSON == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets backend")
		}
		if hasFile && c.ServiceAccountJSON == "" {
			if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.ServiceAccountFile))
			}
		}

	case "xlsx":
		if c.XLSXPath == "" {
			errors = append(errors, "PAGU_XLSX_PATH is required when using xlsx backend")
		} else if _, err := os.Stat(c.XLSXPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("workbook file does not exist: %s", c.XLSXPath))
		}

	case "memory":
		if c.MemoryDir == "" {
			errors = append(errors, "PAGU_MEMORY_DIR cannot be empty when using memory backend")
		}
	}

	if c.RunLogDBPath != "" {
		dir := filepath.Dir(c.RunLogDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create run log directory '%s': %v", dir, err))
				}
			}
		}
	}

	if _, err := plog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid LOG_LEVEL: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
