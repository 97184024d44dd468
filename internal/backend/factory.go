package backend

import (
	"context"
	"fmt"
	"log/slog"

	plog "pagu/internal/log"
	gsheet "pagu/internal/sheets/google"
	"pagu/internal/sheets/memory"
	"pagu/internal/sheets/xlsx"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	return &DefaultFactory{
		logger: plog.WithComponent(logger, plog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case XLSXBackend:
		return f.createXLSXBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.NewWithServiceAccount(ctx, config.SpreadsheetURL, config.ServiceAccountJSON, config.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		plog.FieldBackend, config.Type,
		plog.FieldSource, cli.Source())

	return &BackendResult{Reader: cli}, nil
}

func (f *DefaultFactory) createXLSXBackend(config Config) (*BackendResult, error) {
	wb := xlsx.New(config.XLSXPath)

	f.logger.Info("Initialized xlsx backend",
		plog.FieldBackend, config.Type,
		plog.FieldPath, config.XLSXPath)

	return &BackendResult{Reader: wb}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := memory.NewFromDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load memory backend from %s: %w", dataDir, err)
	}

	f.logger.Info("Initialized memory backend",
		plog.FieldBackend, config.Type,
		plog.FieldPath, dataDir)

	return &BackendResult{Reader: store}, nil
}
