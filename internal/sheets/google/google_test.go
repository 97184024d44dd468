package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ports "pagu/internal/sheets"

	goption "google.golang.org/api/option"
)

type fakeSheet struct {
	title string
	rows  [][]any
}

// newFakeSheetsServer emulates the two Sheets v4 endpoints the client uses.
func newFakeSheetsServer(t *testing.T, id string, sheets []fakeSheet, metaStatus int) *httptest.Server {
	t.Helper()
	base := "/v4/spreadsheets/" + id
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == base:
			if metaStatus != http.StatusOK {
				w.WriteHeader(metaStatus)
				_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": metaStatus, "message": "denied"}})
				return
			}
			var list []map[string]any
			for _, s := range sheets {
				list = append(list, map[string]any{"properties": map[string]any{"title": s.title}})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": id, "sheets": list})
		case strings.HasPrefix(r.URL.Path, base+"/values/"):
			rng := strings.TrimPrefix(r.URL.Path, base+"/values/")
			title := strings.ReplaceAll(strings.Trim(rng, "'"), "''", "'")
			for _, s := range sheets {
				if s.title == title {
					_ = json.NewEncoder(w).Encode(map[string]any{"range": rng, "majorDimension": "ROWS", "values": s.rows})
					return
				}
			}
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 400, "message": "Unable to parse range: " + rng}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, source string) *Client {
	t.Helper()
	c, err := New(context.Background(), source,
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestSpreadsheetID(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://docs.google.com/spreadsheets/d/1ayGwiw88Esy_Aa-dik/edit?usp=sharing", "1ayGwiw88Esy_Aa-dik", false},
		{"https://docs.google.com/spreadsheets/d/abc123", "abc123", false},
		{"  abc123  ", "abc123", false},
		{"", "", true},
		{"https://example.com/not/a/sheet", "", true},
	}
	for _, tc := range cases {
		got, err := SpreadsheetID(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q err=%v, want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestClient_SheetTitlesAndReadSheet(t *testing.T) {
	srv := newFakeSheetsServer(t, "abc", []fakeSheet{
		{title: "GRAND TOTAL", rows: [][]any{{"NO", "Nama KPPN"}, {"1", "LHOKSEUMAWE"}}},
		{title: "KAB BIREUN", rows: [][]any{{"NO", "NMKABKOTA", "PAGU"}, {"1", "BIREUN", "Rp 1.000"}, {"2"}}},
	}, http.StatusOK)
	c := newTestClient(t, srv, "https://docs.google.com/spreadsheets/d/abc/edit")

	if c.Source() != "https://docs.google.com/spreadsheets/d/abc/edit" {
		t.Fatalf("unexpected source %q", c.Source())
	}

	titles, err := c.SheetTitles(context.Background())
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	if len(titles) != 2 || titles[0] != "GRAND TOTAL" || titles[1] != "KAB BIREUN" {
		t.Fatalf("unexpected titles %v", titles)
	}

	rows, err := c.ReadSheet(context.Background(), "KAB BIREUN")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][2] != "Rp 1.000" {
		t.Fatalf("unexpected cell %#v", rows[1][2])
	}
	if len(rows[2]) != 1 {
		t.Fatalf("ragged rows must be returned as-is, got %v", rows[2])
	}
}

func TestClient_ReadSheetMissing(t *testing.T) {
	srv := newFakeSheetsServer(t, "abc", nil, http.StatusOK)
	c := newTestClient(t, srv, "abc")

	_, err := c.ReadSheet(context.Background(), "KAB ACEH UTARA")
	if !errors.Is(err, ports.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestClient_SheetTitlesUnavailable(t *testing.T) {
	srv := newFakeSheetsServer(t, "abc", nil, http.StatusForbidden)
	c := newTestClient(t, srv, "abc")

	_, err := c.SheetTitles(context.Background())
	if !errors.Is(err, ports.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestClient_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "abc"}
	if _, err := c.SheetTitles(context.Background()); !errors.Is(err, ports.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := c.ReadSheet(context.Background(), "X"); err == nil {
		t.Fatal("expected error for nil service")
	}
}

func TestNewWithServiceAccount_MissingCredentials(t *testing.T) {
	_, err := NewWithServiceAccount(context.Background(), "abc", "", "")
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewWithServiceAccount_UnreadableFile(t *testing.T) {
	_, err := NewWithServiceAccount(context.Background(), "abc", "", "/nonexistent/creds.json")
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestQuoteSheetTitle(t *testing.T) {
	if got := quoteSheetTitle("KAB BIREUN"); got != "'KAB BIREUN'" {
		t.Fatalf("got %q", got)
	}
	if got := quoteSheetTitle("O'Neil"); got != "'O''Neil'" {
		t.Fatalf("got %q", got)
	}
}
