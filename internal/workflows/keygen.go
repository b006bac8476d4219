package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/stegvault/internal/audit"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/keys"
	"github.com/PolarWolf314/stegvault/internal/utils"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	Path string

	// Force replaces an existing key file.
	Force bool
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	Path        string
	Fingerprint string

	// Replaced reports that an existing key file was overwritten.
	Replaced bool
}

// Keygen writes a fresh random key with 0600 permissions.
//
// Returns ErrKeyFileExists if Path exists and Force is not set.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	exists := utils.FileExists(opts.Path)
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyFileExists, opts.Path)
	}

	key, err := keys.Generate()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if exists {
		if err := utils.WriteFileAtomic(opts.Path, key.Bytes(), 0600); err != nil {
			return nil, err
		}
	} else if err := keys.SaveFile(opts.Path, key); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("keygen")
	entry.Output = opts.Path
	entry.KeyFingerprint = key.Fingerprint()
	record(config, entry)

	return &KeygenResult{
		Path:        opts.Path,
		Fingerprint: key.Fingerprint(),
		Replaced:    exists,
	}, nil
}
