package backend

import (
	"fmt"

	"pagu/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s (must be one of %v)", appConfig.DataBackend, GetBackendTypes())
	}

	return Config{
		Type: backendType,

		SpreadsheetURL:     appConfig.SpreadsheetURL,
		ServiceAccountJSON: appConfig.ServiceAccountJSON,
		ServiceAccountFile: appConfig.ServiceAccountFile,

		XLSXPath: appConfig.XLSXPath,

		DataDirectory: appConfig.MemoryDir,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s (must be one of %v)", c.Type, GetBackendTypes())
	}

	switch c.Type {
	case SheetsBackend:
		if c.SpreadsheetURL == "" {
			return fmt.Errorf("spreadsheet URL is required for sheets backend")
		}
		if c.ServiceAccountJSON == "" && c.ServiceAccountFile == "" {
			return fmt.Errorf("either ServiceAccountJSON or ServiceAccountFile must be provided for sheets backend")
		}
	case XLSXBackend:
		if c.XLSXPath == "" {
			return fmt.Errorf("workbook path is required for xlsx backend")
		}
	case MemoryBackend:
		// DataDirectory defaults to "data"
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SheetsBackend, XLSXBackend, MemoryBackend}
}
