package carrier

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// Kind is the tagged variant of carrier types.
type Kind string

const (
	// KindImage is a raster image: PNG, BMP, TIFF or JPEG.
	KindImage Kind = "image"

	// KindAudio is a 16-bit PCM WAV file.
	KindAudio Kind = "audio"

	// KindDocument is a PDF or any file ending in an end-of-file marker.
	KindDocument Kind = "document"
)

// Kinds lists every carrier type.
var Kinds = []Kind{KindImage, KindAudio, KindDocument}

// Codec hides framed bytes in a carrier and recovers them.
type Codec interface {
	Kind() Kind

	// Capacity reports how many units the carrier offers.
	Capacity(carrier []byte) (int64, capacity.Unit, error)

	// CanEmbed reports whether a framed payload of framedLen bytes fits.
	CanEmbed(carrier []byte, framedLen int) (capacity.Report, error)

	// Embed returns a copy of the carrier holding framed. It fails with a
	// *errors.CapacityError before building any output when framed does not fit.
	Embed(carrier, framed []byte) ([]byte, error)

	// Extract returns the framed bytes hidden in the carrier.
	Extract(carrier []byte) ([]byte, error)
}

// Options configures the codecs built by ForKind.
type Options struct {
	// ImageFormat is the encoding for image output: png, bmp or tiff.
	// Empty keeps the input's format, with lossy inputs written as png.
	ImageFormat string

	// Marker is the document end-of-file marker. Empty means %%EOF.
	Marker string

	// MaxTrailerBytes bounds document trailers. Zero means
	// capacity.DefaultMaxTrailerBytes.
	MaxTrailerBytes int64
}

// ForKind returns the codec for k.
func ForKind(k Kind, opts Options) (Codec, error) {
	switch k {
	case KindImage:
		return NewImage(opts.ImageFormat)
	case KindAudio:
		return NewAudio(), nil
	case KindDocument:
		return NewDocument(opts.Marker, opts.MaxTrailerBytes), nil
	default:
		return nil, &kerrors.FormatError{Kind: kerrors.ErrUnknownCarrier, Detail: string(k)}
	}
}

// ParseKind resolves a carrier type name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "image", "img":
		return KindImage, nil
	case "audio", "wav":
		return KindAudio, nil
	case "document", "doc", "pdf":
		return KindDocument, nil
	}
	return "", &kerrors.FormatError{Kind: kerrors.ErrUnknownCarrier, Detail: name}
}

// DetectKind guesses the carrier type from a file extension.
func DetectKind(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg":
		return KindImage, nil
	case ".wav", ".wave":
		return KindAudio, nil
	case ".pdf":
		return KindDocument, nil
	}
	return "", &kerrors.FormatError{
		Kind:   kerrors.ErrUnknownCarrier,
		Detail: fmt.Sprintf("cannot infer carrier type from %q", filepath.Base(path)),
	}
}

// DefaultOutputName is the output file used when none is given.
func DefaultOutputName(k Kind) string {
	switch k {
	case KindAudio:
		return "output.wav"
	case KindDocument:
		return "output.pdf"
	default:
		return "output.png"
	}
}

func checkFit(c Codec, carrier []byte, framedLen int) (capacity.Report, error) {
	available, unit, err := c.Capacity(carrier)
	if err != nil {
		return capacity.Report{}, err
	}
	return capacity.Check(available, capacity.RequiredUnits(framedLen, unit), unit), nil
}
