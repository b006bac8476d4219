package utils

import (
	"encoding/hex"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// FormatBytes renders n as a short binary-prefixed size.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// IsPrintableText reports whether b is valid UTF-8 made of printable runes
// and ordinary whitespace.
func IsPrintableText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// HexDump renders b in hexdump -C layout.
func HexDump(b []byte) string {
	return hex.Dump(b)
}
