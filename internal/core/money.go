// Package core provides the budget domain model and the amount normalizer.
//
// This file contains the conversion of spreadsheet cells holding
// locale-formatted rupiah amounts into numbers, and the realization
// percentage used by every summary.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const currencyMarker = "Rp"

var groupingStripper = strings.NewReplacer(currencyMarker, "", ",", "", ".", "")

// NormalizeAmount converts a cell value into a number and never fails.
//
// Text cells lose the currency marker and every "," and "." before being
// trimmed; the residue is parsed only if it is made of ASCII digits,
// otherwise the result is 0. Separators are dropped unconditionally, so
// amounts are always read as whole rupiah. Numeric cells pass through, nil
// and non-finite values become 0.
//
// Examples:
//
//	NormalizeAmount("Rp 1.234.567") -> 1234567
//	NormalizeAmount("-")            -> 0
//	NormalizeAmount("-500")         -> 0 (a minus sign is not a digit)
//	NormalizeAmount(1500.0)         -> 1500
func NormalizeAmount(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return normalizeText(x)
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return normalizeText(fmt.Sprint(x))
	}
}

func normalizeText(s string) float64 {
	s = strings.TrimSpace(groupingStripper.Replace(s))
	if s == "" {
		return 0
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func validAmount(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Percentage returns realized/budget*100, or 0 when budget is not positive.
func Percentage(budget, realized float64) float64 {
	if budget > 0 {
		return realized / budget * 100
	}
	return 0
}
