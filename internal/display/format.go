package display

import (
	"fmt"
	"strconv"
	"strings"
)

// bytesPerKilo matches the decimal kilobyte used in per-file size lines.
const bytesPerKilo = 1000

// FormatKB returns bytes/1000 in the shortest decimal form (e.g. 1234567 ->
// "1234.567"). Whole values keep one decimal ("1234.0"). It is the unit of
// the "<before> KB ==> <after> KB" lines.
func FormatKB(bytes int64) string {
	s := strconv.FormatFloat(float64(bytes)/bytesPerKilo, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatDims returns "WxH", or "unknown" when either side is not positive.
func FormatDims(w, h int) string {
	if w <= 0 || h <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 MiB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}
