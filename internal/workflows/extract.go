package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/audit"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/keys"
	"github.com/PolarWolf314/stegvault/internal/stego"
)

// ExtractOptions configures the extract workflow.
type ExtractOptions struct {
	CarrierPath string
	KeyPath     string

	// Kind is image, audio or document. Empty infers it from CarrierPath.
	Kind string

	// OutputPath, when set, receives the payload instead of the result.
	OutputPath string

	// Force allows replacing an existing OutputPath.
	Force bool
}

// ExtractResult contains the outcome of an extract operation.
type ExtractResult struct {
	Payload        []byte
	Kind           carrier.Kind
	KeyFingerprint string

	// OutputPath is set when the payload was written to a file.
	OutputPath string
}

// Extract recovers the payload hidden in the carrier and verifies it.
//
// Returns ErrAuthenticationFailed for a wrong key or a modified carrier, and
// a *FrameError when the carrier does not hold a complete frame. No
// plaintext is returned or written on failure.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
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

	if opts.OutputPath != "" {
		if err := checkOutput(opts.OutputPath, opts.CarrierPath, opts.Force); err != nil {
			return nil, err
		}
	}

	codec, err := codecFor(kind, config, "")
	if err != nil {
		return nil, err
	}

	key, err := keys.LoadFile(opts.KeyPath)
	if err != nil {
		return nil, err
	}

	carrierBytes, err := readCarrier(opts.CarrierPath)
	if err != nil {
		return nil, err
	}

	engine, err := newEngine(config)
	if err != nil {
		return nil, err
	}

	payload, err := stego.Open(engine, key, codec, carrierBytes)
	if err != nil {
		return nil, fmt.Errorf("extracting from %s: %w", opts.CarrierPath, err)
	}

	result := &ExtractResult{
		Payload:        payload,
		Kind:           kind,
		KeyFingerprint: key.Fingerprint(),
	}

	if opts.OutputPath != "" {
		if err := writeOutput(ctx, opts.OutputPath, payload, 0600); err != nil {
			return nil, err
		}
		result.OutputPath = opts.OutputPath
	}

	entry := audit.NewEntry("extract")
	entry.Kind = string(kind)
	entry.Input = opts.CarrierPath
	entry.Output = result.OutputPath
	entry.KeyFingerprint = result.KeyFingerprint
	entry.Suite = string(engine.Suite())
	entry.PayloadBytes = int64(len(payload))
	record(config, entry)

	return result, nil
}
