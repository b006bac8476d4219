package workflows

import (
	"context"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/stego"
)

// CapacityOptions configures the capacity workflow.
type CapacityOptions struct {
	CarrierPath string

	// Kind is image, audio or document. Empty infers it from CarrierPath.
	Kind string

	// PayloadBytes, when positive, asks whether a payload of that size fits.
	PayloadBytes int
}

// CapacityResult describes what a carrier can hold.
type CapacityResult struct {
	Kind carrier.Kind

	// Available is counted in Unit: bits for LSB carriers, bytes for documents.
	Available int64
	Unit      capacity.Unit

	// MaxPayload is the largest plaintext in bytes after framing and
	// envelope overhead.
	MaxPayload int64

	// Report answers PayloadBytes; nil when it was not asked.
	Report *capacity.Report
}

// Capacity inspects a carrier without modifying or encrypting anything.
func Capacity(ctx context.Context, opts CapacityOptions) (*CapacityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	kind, err := resolveKind(opts.Kind, opts.CarrierPath)
	if err != nil {
		return nil, err
	}

	codec, err := codecFor(kind, config, "")
	if err != nil {
		return nil, err
	}

	carrierBytes, err := readCarrier(opts.CarrierPath)
	if err != nil {
		return nil, err
	}

	available, unit, err := codec.Capacity(carrierBytes)
	if err != nil {
		return nil, err
	}

	maxPayload, err := stego.MaxPayload(codec, carrierBytes)
	if err != nil {
		return nil, err
	}

	result := &CapacityResult{
		Kind:       kind,
		Available:  available,
		Unit:       unit,
		MaxPayload: maxPayload,
	}

	if opts.PayloadBytes > 0 {
		report, err := stego.Required(codec, carrierBytes, opts.PayloadBytes)
		if err != nil {
			return nil, err
		}
		result.Report = &report
	}

	return result, nil
}
