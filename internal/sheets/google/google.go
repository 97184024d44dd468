package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	plog "pagu/internal/log"
	ports "pagu/internal/sheets"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	source        string
	spreadsheetID string
}

// Ensure interface conformance
var _ ports.WorkbookReader = (*Client)(nil)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the spreadsheet ID from a shared-document URL such
// as https://docs.google.com/spreadsheets/d/<ID>/edit?usp=sharing. A value
// that is not a URL is taken as a bare ID.
func SpreadsheetID(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", errors.New("missing spreadsheet URL or ID")
	}
	if m := spreadsheetURLPattern.FindStringSubmatch(source); m != nil {
		return m[1], nil
	}
	if strings.Contains(source, "/") {
		return "", fmt.Errorf("no spreadsheet ID in %q", source)
	}
	return source, nil
}

// New creates a Sheets client for the workbook addressed by source.
// Authentication is entirely up to opts.
func New(ctx context.Context, source string, opts ...goption.ClientOption) (*Client, error) {
	id, err := SpreadsheetID(source)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, source: source, spreadsheetID: id}, nil
}

// NewWithServiceAccount creates a read-only client authenticated with
// service-account credentials, given inline or as a file path. Inline JSON
// wins when both are set.
func NewWithServiceAccount(ctx context.Context, source, inlineJSON, file string) (*Client, error) {
	credentialsJSON, err := readCredentials(ctx, inlineJSON, file)
	if err != nil {
		return nil, err
	}

	plog.WithComponent(nil, plog.ComponentSheets).InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	return New(ctx, source,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope),
	)
}

func readCredentials(ctx context.Context, inlineJSON, file string) ([]byte, error) {
	logger := plog.WithComponent(nil, plog.ComponentSheets)
	inlineJSON = strings.TrimSpace(inlineJSON)
	file = strings.TrimSpace(file)
	switch {
	case inlineJSON != "":
		logger.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(inlineJSON), nil
	case file != "":
		logger.InfoContext(ctx, "Reading credentials from file", plog.FieldPath, file)
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (c *Client) Source() string { return c.source }

// SheetTitles fetches the worksheet titles. Any failure here is reported as
// ports.ErrSourceUnavailable: bad credentials, unknown spreadsheet and
// network errors all mean the workbook cannot be read.
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("%w: sheets service not initialized", ports.ErrSourceUnavailable)
	}
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet %s: %v", ports.ErrSourceUnavailable, c.spreadsheetID, err)
	}
	titles := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		titles = append(titles, sh.Properties.Title)
	}
	return titles, nil
}

// ReadSheet reads the whole worksheet as formatted text.
func (c *Client) ReadSheet(ctx context.Context, title string) ([][]any, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := quoteSheetTitle(title)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s: %v", ports.ErrSheetNotFound, title, err)
		}
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// quoteSheetTitle turns a worksheet title into an A1 range covering the
// whole sheet; titles with spaces must be single-quoted.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
