package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ports "pagu/internal/sheets"
)

// Store is an in-memory workbook. It backs tests and offline demos.
type Store struct {
	mu     sync.Mutex
	source string
	order  []string
	sheets map[string][][]any
	err    error
}

var _ ports.WorkbookReader = (*Store)(nil)

func New(source string) *Store {
	return &Store{source: source, sheets: map[string][][]any{}}
}

// NewFromDir loads every <title>.csv file in dir as a worksheet, in
// file-name order. The first CSV row is the header.
func NewFromDir(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	s := New(dir)
	for _, name := range names {
		rows, err := readCSV(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		s.Put(strings.TrimSuffix(name, filepath.Ext(name)), rows)
	}
	return s, nil
}

func readCSV(path string) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		rows[i] = row
	}
	return rows, nil
}

// Put adds or replaces a worksheet.
func (s *Store) Put(title string, rows [][]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[title]; !ok {
		s.order = append(s.order, title)
	}
	s.sheets[title] = rows
}

// Fail makes every subsequent call report err, emulating a source that
// cannot be reached. Fail(nil) restores the store.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Source() string { return s.source }

func (s *Store) SheetTitles(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrSourceUnavailable, s.err)
	}
	return append([]string(nil), s.order...), nil
}

// ReadSheet returns a copy of the worksheet rows.
func (s *Store) ReadSheet(_ context.Context, title string) ([][]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	rows, ok := s.sheets[title]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrSheetNotFound, title)
	}
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = append([]any(nil), r...)
	}
	return out, nil
}
