package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/stegvault/internal/audit"
	"github.com/PolarWolf314/stegvault/internal/capacity"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/envelope"
	"github.com/PolarWolf314/stegvault/internal/keys"
	"github.com/PolarWolf314/stegvault/internal/stego"
)

// EmbedOptions configures the embed workflow.
type EmbedOptions struct {
	// CarrierPath is the cover file. It is never modified.
	CarrierPath string

	// KeyPath is the raw 32-byte key file.
	KeyPath string

	// CreateKey generates and saves a key at KeyPath when none exists.
	CreateKey bool

	// Kind is image, audio or document. Empty infers it from CarrierPath.
	Kind string

	// OutputPath defaults to output.png, output.wav or output.pdf.
	OutputPath string

	// Force allows replacing an existing OutputPath.
	Force bool

	// Payload is the plaintext to hide. It may be empty.
	Payload []byte
}

// EmbedResult contains the outcome of an embed operation.
type EmbedResult struct {
	OutputPath     string
	Kind           carrier.Kind
	Suite          envelope.Suite
	Report         capacity.Report
	PayloadBytes   int
	KeyFingerprint string

	// KeyCreated reports that CreateKey wrote a new key file.
	KeyCreated bool
}

// Embed encrypts the payload under the key file and hides it in a copy of
// the carrier.
//
// Returns ErrOutputIsInput if the output would replace the carrier.
// Returns ErrOutputExists if the output exists and Force is not set.
// Returns a *CapacityError, with Report still filled in, when the payload
// does not fit; no output file is created in that case, and with CreateKey
// no key file is left behind.
func Embed(ctx context.Context, opts EmbedOptions) (*EmbedResult, error) {
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

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = carrier.DefaultOutputName(kind)
	}
	if err := checkOutput(outputPath, opts.CarrierPath, opts.Force); err != nil {
		return nil, err
	}

	codec, err := codecFor(kind, config, outputPath)
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

	// A key is only created once the payload is known to fit.
	if opts.CreateKey {
		report, err := stego.Required(codec, carrierBytes, len(opts.Payload))
		if err != nil {
			return nil, fmt.Errorf("embedding into %s: %w", opts.CarrierPath, err)
		}
		if err := report.Err(); err != nil {
			return &EmbedResult{
				OutputPath:   outputPath,
				Kind:         kind,
				Suite:        engine.Suite(),
				Report:       report,
				PayloadBytes: len(opts.Payload),
			}, fmt.Errorf("embedding into %s: %w", opts.CarrierPath, err)
		}
	}

	key, created, err := loadKey(opts.KeyPath, opts.CreateKey)
	if err != nil {
		return nil, err
	}

	result := &EmbedResult{
		OutputPath:     outputPath,
		Kind:           kind,
		Suite:          engine.Suite(),
		PayloadBytes:   len(opts.Payload),
		KeyFingerprint: key.Fingerprint(),
		KeyCreated:     created,
	}

	out, report, err := stego.Seal(engine, key, codec, carrierBytes, opts.Payload)
	result.Report = report
	if err == nil {
		err = writeOutput(ctx, outputPath, out, 0644)
	}
	if err != nil {
		if created {
			_ = os.Remove(opts.KeyPath)
			result.KeyCreated = false
		}
		return result, fmt.Errorf("embedding into %s: %w", opts.CarrierPath, err)
	}

	entry := audit.NewEntry("embed")
	entry.Kind = string(kind)
	entry.Input = opts.CarrierPath
	entry.Output = outputPath
	entry.KeyFingerprint = result.KeyFingerprint
	entry.Suite = string(result.Suite)
	entry.PayloadBytes = int64(len(opts.Payload))
	record(config, entry)

	return result, nil
}

func loadKey(path string, create bool) (keys.Key, bool, error) {
	if create {
		return keys.LoadOrCreate(path)
	}
	key, err := keys.LoadFile(path)
	return key, false, err
}
