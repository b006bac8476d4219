package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/stegvault/internal/audit"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/configs"
	"github.com/PolarWolf314/stegvault/internal/envelope"
	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
	"github.com/PolarWolf314/stegvault/internal/utils"
)

// loadConfig reads the user config. Each call gets its own copy, so
// concurrent workflows never share settings.
func loadConfig() (*configs.Config, error) {
	return configs.Load()
}

// record journals entry under the audit switch of config.
func record(config *configs.Config, entry audit.Entry) {
	audit.Log(entry, config.Audit.Enabled)
}

// resolveKind uses the explicit type when given and the extension otherwise.
func resolveKind(explicit, path string) (carrier.Kind, error) {
	if explicit != "" {
		return carrier.ParseKind(explicit)
	}
	return carrier.DetectKind(path)
}

// codecFor builds the codec for kind. An image output path with a known
// extension overrides the configured output format.
func codecFor(kind carrier.Kind, config *configs.Config, outputPath string) (carrier.Codec, error) {
	opts := config.CodecOptions()
	if kind == carrier.KindImage {
		if format := imageFormatForPath(outputPath); format != "" {
			opts.ImageFormat = format
		}
	}
	return carrier.ForKind(kind, opts)
}

func imageFormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return ""
}

func newEngine(config *configs.Config) (*envelope.Engine, error) {
	return envelope.New(config.Suite())
}

func readCarrier(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier %s: %w", path, err)
	}
	return data, nil
}

// checkOutput enforces the output rules shared by embed and extract.
func checkOutput(outputPath, carrierPath string, force bool) error {
	if utils.SamePath(outputPath, carrierPath) {
		return fmt.Errorf("%w: %s", kerrors.ErrOutputIsInput, outputPath)
	}
	if !force && utils.FileExists(outputPath) {
		return fmt.Errorf("%w: %s", kerrors.ErrOutputExists, outputPath)
	}
	return nil
}

// writeOutput writes data atomically once ctx is still live.
func writeOutput(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, perm)
}
