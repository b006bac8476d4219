package ui

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// Describe turns an error from the core into a headline and, where one
// exists, a hint telling the user what to do next. Errors it does not know
// are passed through verbatim.
func Describe(err error) (message, hint string) {
	var (
		keyErr   *kerrors.KeyLengthError
		capErr   *kerrors.CapacityError
		frameErr *kerrors.FrameError
		fmtErr   *kerrors.FormatError
	)

	switch {
	case err == nil:
		return "", ""

	case errors.As(err, &keyErr):
		return fmt.Sprintf("Key file must hold exactly 32 bytes, found %s", Highlight.Sprint(keyErr.Got)),
			"Generate a key with " + Code.Sprint("stegvault keygen <path>")

	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return "The hidden payload could not be authenticated",
			"Use the key that embedded it; the carrier may also have been modified"

	case errors.Is(err, kerrors.ErrRandomnessUnavailable):
		return "The system random source is unavailable", ""

	case errors.As(err, &capErr):
		return fmt.Sprintf("Payload needs %s but the carrier only offers %s",
				Highlight.Sprintf("%d %s", capErr.Required, capErr.Unit),
				Highlight.Sprintf("%d %s", capErr.Available, capErr.Unit)),
			"Use a larger carrier or a shorter payload; " + Code.Sprint("stegvault capacity <carrier>") + " shows the limit"

	case errors.As(err, &frameErr):
		if frameErr.Kind == kerrors.TruncatedFrame {
			return "The carrier is too small to hold a hidden payload", ""
		}
		return fmt.Sprintf("No complete hidden payload found (declared %d bytes, %d available)",
				frameErr.Declared, frameErr.Available),
			"The carrier was probably never embedded into, or was re-encoded after embedding"

	case errors.Is(err, kerrors.ErrFrameTooLarge):
		return "Payload is too large to embed", ""

	case errors.As(err, &fmtErr):
		return describeFormat(fmtErr)

	case errors.Is(err, kerrors.ErrUnknownCarrier):
		return "Could not tell what kind of carrier this is",
			"Pass " + Flag.Sprint("--type image|audio|document")

	case errors.Is(err, kerrors.ErrOutputIsInput):
		return "Refusing to overwrite the carrier with the output",
			"Choose a different " + Flag.Sprint("--output")

	case errors.Is(err, kerrors.ErrOutputExists):
		return "The output file already exists",
			"Pass " + Flag.Sprint("--force") + " to replace it"

	case errors.Is(err, kerrors.ErrKeyFileExists):
		return "A key file already exists at that path",
			"Pass " + Flag.Sprint("--force") + " to replace it; anything hidden with the old key becomes unreadable"

	case errors.Is(err, kerrors.ErrJournalNotFound):
		return "No audit journal found",
			"Operations are recorded after the first embed, extract or keygen"

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return err.Error(), "Dates are written as YYYY-MM-DD"

	case errors.Is(err, kerrors.ErrEmptyPayload):
		return "No payload to hide",
			"Pass " + Flag.Sprint("--message") + " or " + Flag.Sprint("--input") + ", or pipe data on stdin"
	}

	return err.Error(), ""
}

func describeFormat(e *kerrors.FormatError) (string, string) {
	switch {
	case errors.Is(e.Kind, kerrors.ErrUnsupportedImageFormat):
		return "Unsupported image: " + e.Detail,
			"Use an 8-bit RGB or RGBA PNG, BMP or TIFF"
	case errors.Is(e.Kind, kerrors.ErrUnsupportedAudioFormat):
		return "Unsupported audio: " + e.Detail,
			"Use a 16-bit PCM WAV file"
	case errors.Is(e.Kind, kerrors.ErrMarkerNotFound):
		return "The document has no " + Highlight.Sprint(e.Detail) + " marker",
			"Only complete PDF files can carry a payload"
	}
	return e.Error(), ""
}
