package carrier

import (
	"bytes"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/framing"
)

// DefaultMarker terminates a PDF file.
const DefaultMarker = "%%EOF"

// Document appends framed bytes after a document's end-of-file marker.
type Document struct {
	marker     []byte
	maxTrailer int64
}

// NewDocument returns a trailer codec for marker, bounded to maxTrailer bytes.
// Zero values select DefaultMarker and capacity.DefaultMaxTrailerBytes.
func NewDocument(marker string, maxTrailer int64) *Document {
	if marker == "" {
		marker = DefaultMarker
	}
	if maxTrailer <= 0 {
		maxTrailer = capacity.DefaultMaxTrailerBytes
	}
	return &Document{marker: []byte(marker), maxTrailer: maxTrailer}
}

// Kind reports KindDocument.
func (c *Document) Kind() Kind { return KindDocument }

// Capacity is the configured trailer limit; the marker must be present.
func (c *Document) Capacity(carrier []byte) (int64, capacity.Unit, error) {
	if bytes.LastIndex(carrier, c.marker) < 0 {
		return 0, capacity.UnitBytes, c.markerNotFound()
	}
	return c.maxTrailer, capacity.UnitBytes, nil
}

// CanEmbed reports whether framedLen bytes fit the trailer limit.
func (c *Document) CanEmbed(carrier []byte, framedLen int) (capacity.Report, error) {
	return checkFit(c, carrier, framedLen)
}

// Embed keeps everything up to the marker and its line ending, drops any
// earlier trailer, and appends framed.
func (c *Document) Embed(carrier, framed []byte) ([]byte, error) {
	start, ok := c.trailerStart(carrier)
	if !ok {
		return nil, c.markerNotFound()
	}

	report := capacity.Check(c.maxTrailer, capacity.RequiredUnits(len(framed), capacity.UnitBytes), capacity.UnitBytes)
	if err := report.Err(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, start+len(framed))
	out = append(out, carrier[:start]...)
	return append(out, framed...), nil
}

// Extract returns the bytes after the marker that holds the trailer.
func (c *Document) Extract(carrier []byte) ([]byte, error) {
	start, ok := c.trailerStart(carrier)
	if !ok {
		return nil, c.markerNotFound()
	}
	return append([]byte(nil), carrier[start:]...), nil
}

// trailerStart finds where a trailer begins. Marker occurrences are tried
// from the end of the file backwards; the first whose following frame
// consumes the rest of the file exactly wins, so a marker sequence inside an
// old trailer's ciphertext is skipped. Without an exact match the position
// after the last marker and its line ending is used.
func (c *Document) trailerStart(b []byte) (int, bool) {
	fallback := -1
	limit := len(b)
	for {
		idx := bytes.LastIndex(b[:limit], c.marker)
		if idx < 0 {
			break
		}
		end := idx + len(c.marker)
		afterEOL := skipEOL(b, end)
		if fallback < 0 {
			fallback = afterEOL
		}
		for _, candidate := range []int{afterEOL, end} {
			if exactFrame(b[candidate:]) {
				return candidate, true
			}
		}
		// Allow overlapping occurrences.
		limit = end - 1
	}
	return fallback, fallback >= 0
}

func exactFrame(b []byte) bool {
	u, err := framing.Unframe(b)
	return err == nil && len(u.Remainder) == 0 && u.Length > 0
}

func skipEOL(b []byte, pos int) int {
	switch {
	case bytes.HasPrefix(b[pos:], []byte("\r\n")):
		return pos + 2
	case bytes.HasPrefix(b[pos:], []byte("\n")), bytes.HasPrefix(b[pos:], []byte("\r")):
		return pos + 1
	}
	return pos
}

func (c *Document) markerNotFound() error {
	return &kerrors.FormatError{Kind: kerrors.ErrMarkerNotFound, Detail: string(c.marker)}
}
