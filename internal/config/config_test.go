package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmpDir := t.TempDir()
	credFile := filepath.Join(tmpDir, "service-account.json")
	if err := os.WriteFile(credFile, []byte(`{"type":"service_account"}`), 0600); err != nil {
		t.Fatalf("Failed to create test credentials file: %v", err)
	}
	workbook := filepath.Join(tmpDir, "pagu.xlsx")
	if err := os.WriteFile(workbook, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to create test workbook: %v", err)
	}

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sheets backend with inline credentials",
			config: Config{
				DataBackend:        "sheets",
				SpreadsheetURL:     "https://docs.google.com/spreadsheets/d/abc/edit",
				ServiceAccountJSON: `{"type":"service_account"}`,
			},
		},
		{
			name: "valid sheets backend with credentials file",
			config: Config{
				DataBackend:        "sheets",
				SpreadsheetURL:     "abc",
				ServiceAccountFile: credFile,
				RunLogDBPath:       filepath.Join(tmpDir, "logs", "runs.db"),
			},
		},
		{
			name:        "invalid data backend",
			config:      Config{DataBackend: "postgres"},
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [sheets xlsx memory]",
		},
		{
			name:        "sheets backend missing url",
			config:      Config{DataBackend: "sheets", ServiceAccountJSON: "{}"},
			wantErr:     true,
			errorString: "PAGU_SPREADSHEET_URL is required",
		},
		{
			name:        "sheets backend missing credentials",
			config:      Config{DataBackend: "sheets", SpreadsheetURL: "abc"},
			wantErr:     true,
			errorString: "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE",
		},
		{
			name: "sheets backend missing credentials file",
			config: Config{
				DataBackend:        "sheets",
				SpreadsheetURL:     "abc",
				ServiceAccountFile: filepath.Join(tmpDir, "absent.json"),
			},
			wantErr:     true,
			errorString: "Google service account file does not exist",
		},
		{
			name:   "valid xlsx backend",
			config: Config{DataBackend: "xlsx", XLSXPath: workbook},
		},
		{
			name:        "xlsx backend missing path",
			config:      Config{DataBackend: "xlsx"},
			wantErr:     true,
			errorString: "PAGU_XLSX_PATH is required",
		},
		{
			name:        "xlsx backend missing file",
			config:      Config{DataBackend: "xlsx", XLSXPath: filepath.Join(tmpDir, "absent.xlsx")},
			wantErr:     true,
			errorString: "workbook file does not exist",
		},
		{
			name:   "valid memory backend",
			config: Config{DataBackend: "memory", MemoryDir: "data"},
		},
		{
			name:        "memory backend empty dir",
			config:      Config{DataBackend: "memory"},
			wantErr:     true,
			errorString: "PAGU_MEMORY_DIR cannot be empty",
		},
		{
			name:        "invalid log level",
			config:      Config{DataBackend: "memory", MemoryDir: "data", LogLevel: "loud"},
			wantErr:     true,
			errorString: "invalid LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	err := (&Config{DataBackend: "sheets", LogLevel: "loud"}).Validate()
	if err == nil {
		t.Fatal("Config.Validate() error = nil")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:") {
		t.Errorf("unexpected prefix: %v", msg)
	}
	if n := strings.Count(msg, "\n- "); n != 3 {
		t.Errorf("expected 3 problems, got %d: %v", n, msg)
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{
		"DATA_BACKEND", "PAGU_SPREADSHEET_URL", "GOOGLE_SERVICE_ACCOUNT_JSON",
		"GOOGLE_SERVICE_ACCOUNT_FILE", "GOOGLE_APPLICATION_CREDENTIALS",
		"PAGU_XLSX_PATH", "PAGU_MEMORY_DIR", "RUN_LOG_DB_PATH", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()
		if cfg.DataBackend != "sheets" {
			t.Errorf("Load() DataBackend = %v, want sheets", cfg.DataBackend)
		}
		if cfg.MemoryDir != "data" {
			t.Errorf("Load() MemoryDir = %v, want data", cfg.MemoryDir)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.RunLogDBPath != "" {
			t.Errorf("Load() RunLogDBPath = %v, want empty", cfg.RunLogDBPath)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "xlsx")
		t.Setenv("PAGU_XLSX_PATH", "/tmp/pagu.xlsx")
		t.Setenv("RUN_LOG_DB_PATH", "/tmp/runs.db")
		t.Setenv("LOG_LEVEL", "debug")
		cfg := Load()
		if cfg.DataBackend != "xlsx" || cfg.XLSXPath != "/tmp/pagu.xlsx" {
			t.Errorf("Load() backend = %v path = %v", cfg.DataBackend, cfg.XLSXPath)
		}
		if cfg.RunLogDBPath != "/tmp/runs.db" || cfg.LogLevel != "debug" {
			t.Errorf("Load() run log = %v level = %v", cfg.RunLogDBPath, cfg.LogLevel)
		}
	})

	t.Run("application credentials fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/adc.json")
		if got := Load().ServiceAccountFile; got != "/secrets/adc.json" {
			t.Errorf("Load() ServiceAccountFile = %v", got)
		}
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "/secrets/sa.json")
		if got := Load().ServiceAccountFile; got != "/secrets/sa.json" {
			t.Errorf("Load() ServiceAccountFile = %v", got)
		}
	})
}
