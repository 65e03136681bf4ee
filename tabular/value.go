package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is a single cell value: float64, string, bool, time.Time, or nil
// for a missing cell. Integers are normalized to float64 on insertion.
type Value = any

// IsMissing reports whether v represents an absent cell: nil or a
// blank/placeholder string.
func IsMissing(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(t)
		return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none")
	}
	return false
}

// Number extracts a numeric value. Strings are parsed after stripping
// currency symbols, thousands separators and a trailing percent sign.
func Number(v Value) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "$")
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String renders a value for display. Missing values render as "".
// Whole numbers drop the fractional part.
func String(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) && t > -1e15 && t < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case time.Time:
		return t.Format("2006-01-02")
	}
	return fmt.Sprint(v)
}
