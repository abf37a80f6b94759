package render

import (
	"fmt"
	"strconv"
)

// blobPreviewLimit is the longest BLOB rendered in full; longer values show
// a truncated literal plus their size.
const blobPreviewLimit = 8

// ByteLiteral renders bytes as a byte-string literal, printable characters
// kept as-is and everything else hex-escaped.
func ByteLiteral(data []byte) string {
	lit := make([]byte, 0, len(data)+4)
	lit = append(lit, 'b', '"')
	for _, b := range data {
		if b >= 40 && b <= 126 {
			lit = append(lit, b)
		} else {
			lit = append(lit, fmt.Sprintf("\\x%02X", b)...)
		}
	}
	return string(append(lit, '"'))
}

// Size renders a byte count in binary units.
func Size(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	for _, unit := range []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"} {
		size /= 1024.0
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
	}
	return "huge"
}

// Value renders one SQL result value for display. NULL renders empty, and
// long BLOBs are truncated with their size appended.
func Value(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case []byte:
		if len(val) <= blobPreviewLimit {
			return ByteLiteral(val)
		}
		return fmt.Sprintf("%s.. (%s)", ByteLiteral(val[:6]), Size(len(val)))
	default:
		return fmt.Sprintf("%v", val)
	}
}
