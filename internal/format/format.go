package format

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// SRTTimestamp formats seconds as HH:MM:SS,mmm.
// Negative values are clamped to zero.
func SRTTimestamp(seconds float64) string {
	h, m, s, ms := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// VTTTimestamp formats seconds as HH:MM:SS.mmm.
// Negative values are clamped to zero.
func VTTTimestamp(seconds float64) string {
	h, m, s, ms := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// Seconds formats seconds with one decimal: 3.2 -> "3.2", 3 -> "3.0".
func Seconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64)
}

// split rounds to whole milliseconds before splitting, so 3.2 is 3s 200ms
// and not 3s 199ms.
func split(seconds float64) (h, m, s, ms int64) {
	total := int64(math.Round(math.Max(seconds, 0) * 1000))
	ms = total % 1000
	total /= 1000
	s = total % 60
	total /= 60
	m = total % 60
	h = total / 60
	return h, m, s, ms
}

// Duration formats a duration as HH:MM:SS or MM:SS.
func Duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Size formats a size in bytes for human display.
// Uses MB for sizes >= 1MB, KB otherwise.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return fmt.Sprintf("%d MB", bytes/mb)
	}
	if bytes >= kb {
		return fmt.Sprintf("%d KB", bytes/kb)
	}
	return fmt.Sprintf("%d bytes", bytes)
}
