package backend

import (
	"context"

	"pagu/internal/sheets"
)

// BackendResult contains the workbook reader for the configured source
type BackendResult struct {
	Reader sheets.WorkbookReader
}

// Factory creates workbook readers based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Google Sheets specific
	SpreadsheetURL     string
	ServiceAccountJSON string
	ServiceAccountFile string

	// xlsx specific
	XLSXPath string

	// Memory backend specific
	DataDirectory string
}

// BackendType represents the type of backend
type BackendType string

const (
	SheetsBackend BackendType = "sheets"
	XLSXBackend   BackendType = "xlsx"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SheetsBackend, XLSXBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
