// Package errors provides typed error values for stegvault.
//
// Every failure in the embedding pipeline is a logic or data error, never a
// transient one, so nothing here is retried. Callers match conditions with
// errors.Is against the sentinels below, and use errors.As against the
// structured types when they need the fields (required versus available
// capacity, declared versus available frame length).
//
// # Error Categories
//
//   - Key errors: the key has the wrong length (ErrInvalidKeyLength)
//   - Crypto errors: the tag did not verify or no randomness was available
//     (ErrAuthenticationFailed, ErrRandomnessUnavailable)
//   - Frame errors: the length prefix is missing or promises more bytes than
//     the carrier holds (ErrTruncatedFrame, ErrIncompleteEnvelope)
//   - Capacity errors: the payload does not fit (ErrCapacityExceeded)
//   - Format errors: the carrier cannot be handled (ErrUnsupportedImageFormat,
//     ErrUnsupportedAudioFormat, ErrMarkerNotFound)
//
// ErrAuthenticationFailed deliberately covers both a wrong key and a corrupted
// carrier.
//
// # Usage
//
//	payload, err := stego.Open(engine, key, codec, carrier)
//	var capErr *errors.CapacityError
//	if errors.As(err, &capErr) {
//	    fmt.Printf("need %d, have %d\n", capErr.Required, capErr.Available)
//	}
package errors
