package errors

import (
	"errors"
	"fmt"
)

// Key errors indicate unusable key material.
var (
	// ErrInvalidKeyLength indicates the key is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrAuthenticationFailed indicates the authentication tag did not verify.
	// It is returned for a wrong key and for tampered data alike.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRandomnessUnavailable indicates the secure random source could not be read.
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")
)

// Frame errors indicate a malformed length-prefixed payload.
var (
	// ErrTruncatedFrame indicates fewer than 4 bytes were available for the length field.
	ErrTruncatedFrame = errors.New("truncated frame")

	// ErrIncompleteEnvelope indicates the declared length exceeds the available bytes.
	ErrIncompleteEnvelope = errors.New("incomplete envelope")

	// ErrFrameTooLarge indicates an envelope too long for a 32-bit length prefix.
	ErrFrameTooLarge = errors.New("envelope too large to frame")
)

// Capacity errors indicate the carrier cannot hold the payload.
var (
	// ErrCapacityExceeded indicates the framed payload needs more units than the carrier offers.
	ErrCapacityExceeded = errors.New("carrier capacity exceeded")
)

// Format errors indicate a carrier this tool cannot handle.
var (
	// ErrUnsupportedImageFormat indicates an image without 8-bit RGB channels.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrUnsupportedAudioFormat indicates audio that is not 16-bit PCM WAV.
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")

	// ErrMarkerNotFound indicates the document has no end-of-file marker.
	ErrMarkerNotFound = errors.New("end-of-file marker not found")

	// ErrUnknownCarrier indicates the carrier type could not be determined.
	ErrUnknownCarrier = errors.New("unknown carrier type")
)

// File errors indicate issues with input or output paths.
var (
	// ErrOutputIsInput indicates the output path would overwrite the carrier.
	ErrOutputIsInput = errors.New("output path is the carrier itself")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrKeyFileExists indicates a key file is already present at the path.
	ErrKeyFileExists = errors.New("key file already exists")

	// ErrEmptyPayload indicates no payload was supplied to embed.
	ErrEmptyPayload = errors.New("no payload provided")
)

// Journal errors indicate problems reading the audit journal.
var (
	// ErrJournalNotFound indicates no audit journal has been written yet.
	ErrJournalNotFound = errors.New("audit journal not found")

	// ErrInvalidDateFormat indicates a --since or --until date that is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// KeyLengthError reports the length of rejected key material.
type KeyLengthError struct {
	Got int
}

// Error implements error.
func (e *KeyLengthError) Error() string {
	return fmt.Sprintf("%v: expected 32 bytes, got %d", ErrInvalidKeyLength, e.Got)
}

func (e *KeyLengthError) Unwrap() error { return ErrInvalidKeyLength }

// FrameKind distinguishes the two ways a frame can be malformed.
type FrameKind int

const (
	// TruncatedFrame means the 4-byte length prefix itself is cut short.
	TruncatedFrame FrameKind = iota

	// IncompleteEnvelope means the prefix declares more bytes than remain.
	IncompleteEnvelope
)

// FrameError describes a frame that could not be decoded.
// Declared and Available are byte counts; Declared is zero for TruncatedFrame.
type FrameError struct {
	Kind      FrameKind
	Declared  int64
	Available int64
}

func (e *FrameError) Error() string {
	if e.Kind == TruncatedFrame {
		return fmt.Sprintf("%v: %d of 4 length bytes available", ErrTruncatedFrame, e.Available)
	}
	return fmt.Sprintf("%v: declared %d bytes, %d available", ErrIncompleteEnvelope, e.Declared, e.Available)
}

func (e *FrameError) Unwrap() error {
	if e.Kind == TruncatedFrame {
		return ErrTruncatedFrame
	}
	return ErrIncompleteEnvelope
}

// CapacityError reports how far a payload overflows its carrier.
// Unit is "bits" for LSB carriers and "bytes" for document trailers.
type CapacityError struct {
	Required  int64
	Available int64
	Unit      string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: required %d %s, available %d %s", ErrCapacityExceeded, e.Required, e.Unit, e.Available, e.Unit)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// FormatError wraps one of the format sentinels with a short detail.
type FormatError struct {
	Kind   error
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *FormatError) Unwrap() error { return e.Kind }

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
