// Package capacity decides whether a framed payload fits a carrier before the
// carrier is touched.
package capacity

import (
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// Unit is what a carrier's capacity is counted in.
type Unit string

const (
	// UnitBits counts substitutable least-significant bits.
	UnitBits Unit = "bits"

	// UnitBytes counts appendable trailer bytes.
	UnitBytes Unit = "bytes"
)

// DefaultMaxTrailerBytes bounds document trailers when no limit is configured.
const DefaultMaxTrailerBytes int64 = 100_000_000

// Report is the outcome of one capacity check. It is never persisted.
type Report struct {
	Available int64
	Required  int64
	Unit      Unit
	Fits      bool
}

// Check compares the units a carrier offers with the units a payload needs.
func Check(available, required int64, unit Unit) Report {
	return Report{
		Available: available,
		Required:  required,
		Unit:      unit,
		Fits:      required <= available,
	}
}

// Err returns a *errors.CapacityError when the payload does not fit.
func (r Report) Err() error {
	if r.Fits {
		return nil
	}
	return &kerrors.CapacityError{
		Required:  r.Required,
		Available: r.Available,
		Unit:      string(r.Unit),
	}
}

// RequiredUnits converts a framed length into the unit a carrier counts in.
func RequiredUnits(framedLen int, unit Unit) int64 {
	if unit == UnitBits {
		return int64(framedLen) * 8
	}
	return int64(framedLen)
}

// PayloadBytes is the largest framed payload, in bytes, that available units
// can hold.
func PayloadBytes(available int64, unit Unit) int64 {
	if unit == UnitBits {
		return available / 8
	}
	return available
}
