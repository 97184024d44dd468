package core

import (
	"errors"
	"strings"
)

const (
	RegionGrandTotal  Region = "GRAND TOTAL"
	RegionAcehUtara   Region = "KAB ACEH UTARA"
	RegionBireun      Region = "KAB BIREUN"
	RegionLhokseumawe Region = "LHOKSEUMAWE"
)

type (
	// Region names one reporting unit; it is also the worksheet title.
	Region string

	// BudgetRecord is one row of the annual table.
	BudgetRecord struct {
		Region      Region
		Year        int
		Program     string // uppercase, trimmed
		ExpenseType string
		Budget      float64
		Realized    float64
	}

	// MonthlyRecord is one row of the monthly realization table.
	MonthlyRecord struct {
		Region   Region
		Year     int
		Program  string
		Month    Month
		Realized float64
	}
)

var (
	ErrInvalidYear      = errors.New("invalid year")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyExpenseType = errors.New("empty expense type")
	ErrInvalidMonth     = errors.New("invalid month")
)

// DefaultRegions returns the worksheets ingested on every run, in
// concatenation order.
func DefaultRegions() []Region {
	return []Region{RegionGrandTotal, RegionAcehUtara, RegionBireun, RegionLhokseumawe}
}

func (r Region) String() string { return string(r) }

// ValidYear reports whether y is a four digit year.
func ValidYear(y int) bool {
	return y >= 1000 && y <= 9999
}

func (b BudgetRecord) Validate() error {
	if !ValidYear(b.Year) {
		return ErrInvalidYear
	}
	if !validAmount(b.Budget) || !validAmount(b.Realized) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(b.ExpenseType) == "" {
		return ErrEmptyExpenseType
	}
	return nil
}

func (m MonthlyRecord) Validate() error {
	if !ValidYear(m.Year) {
		return ErrInvalidYear
	}
	if !m.Month.Valid() {
		return ErrInvalidMonth
	}
	if !validAmount(m.Realized) {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeProgram uppercases and trims a program name.
func NormalizeProgram(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
