package sheets

import (
	"context"
	"errors"
)

var (
	// ErrSourceUnavailable marks failures to reach or authenticate against
	// the workbook as a whole.
	ErrSourceUnavailable = errors.New("workbook source unavailable")
	// ErrSheetNotFound marks a worksheet title absent from the workbook.
	ErrSheetNotFound = errors.New("worksheet not found")
)

// Ports for inbound workbook adapters.
type (
	// WorkbookReader returns raw worksheet contents from a single workbook.
	WorkbookReader interface {
		// Source identifies the workbook (URL, spreadsheet ID or file path).
		Source() string

		// SheetTitles lists the worksheets. It doubles as the connection
		// check: an error here means nothing can be read.
		SheetTitles(ctx context.Context) ([]string, error)

		// ReadSheet returns every row of a worksheet as displayed,
		// header row included. Rows may be ragged.
		ReadSheet(ctx context.Context, title string) ([][]any, error)
	}
)
