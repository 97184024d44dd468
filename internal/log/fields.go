package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldSource      = "source"
	FieldRegion      = "region"
	FieldSheet       = "sheet"
	FieldVariant     = "variant"
	FieldRowsAnnual  = "rows_annual"
	FieldRowsMonthly = "rows_monthly"
	FieldRowsDropped = "rows_dropped"
	FieldReason      = "reason"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldPath        = "path"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentSheets  = "sheets"
	ComponentIngest  = "ingest"
	ComponentCache   = "cache"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithRunID adds the ingestion run id
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithSheet adds the region and worksheet title
func (f LogFields) WithSheet(region, sheet string) LogFields {
	f[FieldRegion] = region
	f[FieldSheet] = sheet
	return f
}

// WithRows adds per-sheet row counts
func (f LogFields) WithRows(annual, monthly, dropped int) LogFields {
	f[FieldRowsAnnual] = annual
	f[FieldRowsMonthly] = monthly
	f[FieldRowsDropped] = dropped
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
