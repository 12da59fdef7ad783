package checker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"sqlcoach/internal/domain"
)

// normalize collapses driver scan types and YAML literal types into a
// single comparable representation: all numbers become float64, []byte
// becomes string, dates become their ISO text.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(val)
	}
}

// rowKey renders a normalized row as a stable comparison key.
func rowKey(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%#v", normalize(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// compareRowSets checks multiset equality between the observed result set
// and the expected rows: row order is ignored, duplicates count. Returns a
// human-readable diff when the sets differ.
func compareRowSets(got *domain.RowSet, want [][]any) (bool, string) {
	counts := make(map[string]int, len(want))
	for _, row := range want {
		counts[rowKey(row)]++
	}

	var extra []string
	for _, row := range got.Rows {
		key := rowKey(row)
		if counts[key] > 0 {
			counts[key]--
			if counts[key] == 0 {
				delete(counts, key)
			}
		} else {
			extra = append(extra, key)
		}
	}

	var missing []string
	for key, n := range counts {
		for i := 0; i < n; i++ {
			missing = append(missing, key)
		}
	}

	if len(missing) == 0 && len(extra) == 0 {
		return true, ""
	}

	sort.Strings(missing)
	sort.Strings(extra)
	var b strings.Builder
	if len(missing) > 0 {
		fmt.Fprintf(&b, "missing rows: %s", strings.Join(missing, " "))
	}
	if len(extra) > 0 {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "unexpected rows: %s", strings.Join(extra, " "))
	}
	return false, b.String()
}

// columnsEqual compares two ordered column lists.
func columnsEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
