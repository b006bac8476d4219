package configs

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/PolarWolf314/stegvault/internal/capacity"
	"github.com/PolarWolf314/stegvault/internal/carrier"
	"github.com/PolarWolf314/stegvault/internal/envelope"
)

type Config struct {
	Crypto   CryptoConfig   `toml:"crypto"`
	Image    ImageConfig    `toml:"image"`
	Document DocumentConfig `toml:"document"`
	Audit    AuditConfig    `toml:"audit"`
}

type CryptoConfig struct {
	Suite string `toml:"suite"`
}

type ImageConfig struct {
	// OutputFormat is png, bmp or tiff. JPEG carriers are always written as PNG.
	OutputFormat string `toml:"output_format"`
}

type DocumentConfig struct {
	Marker          string `toml:"marker"`
	MaxTrailerBytes int64  `toml:"max_trailer_bytes"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Crypto:   CryptoConfig{Suite: string(envelope.AES256GCM)},
		Image:    ImageConfig{OutputFormat: "png"},
		Document: DocumentConfig{Marker: carrier.DefaultMarker, MaxTrailerBytes: capacity.DefaultMaxTrailerBytes},
		Audit:    AuditConfig{Enabled: true},
	}
}

// Load reads the user configuration. A missing file yields Default.
func Load() (*Config, error) {
	return LoadFrom(UserSettings.ConfigPath())
}

// LoadFrom reads the configuration at path over the defaults.
func LoadFrom(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	unknown, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("config %s has unknown keys: %s", path, strings.Join(unknown, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Save writes config to the user configuration path.
func Save(config *Config) error {
	return SaveTo(UserSettings.ConfigPath(), config)
}

// SaveTo validates config and writes it to path.
func SaveTo(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate rejects values no codec or engine can use.
func (c *Config) Validate() error {
	if _, err := envelope.ParseSuite(c.Crypto.Suite); err != nil {
		return err
	}
	if _, err := carrier.NewImage(c.Image.OutputFormat); err != nil {
		return err
	}
	if c.Document.Marker == "" {
		return fmt.Errorf("document.marker must not be empty")
	}
	if c.Document.MaxTrailerBytes <= 0 {
		return fmt.Errorf("document.max_trailer_bytes must be positive, got %d", c.Document.MaxTrailerBytes)
	}
	return nil
}

// Suite is the configured AEAD construction.
func (c *Config) Suite() envelope.Suite {
	suite, err := envelope.ParseSuite(c.Crypto.Suite)
	if err != nil {
		return envelope.AES256GCM
	}
	return suite
}

// CodecOptions carries the carrier settings into carrier.ForKind.
func (c *Config) CodecOptions() carrier.Options {
	return carrier.Options{
		ImageFormat:     c.Image.OutputFormat,
		Marker:          c.Document.Marker,
		MaxTrailerBytes: c.Document.MaxTrailerBytes,
	}
}

// settable maps dotted keys to accessors for `config set` and `config show`.
var settable = map[string]struct {
	get func(*Config) string
	set func(*Config, string) error
}{
	"crypto.suite": {
		get: func(c *Config) string { return c.Crypto.Suite },
		set: func(c *Config, v string) error { c.Crypto.Suite = v; return nil },
	},
	"image.output_format": {
		get: func(c *Config) string { return c.Image.OutputFormat },
		set: func(c *Config, v string) error { c.Image.OutputFormat = strings.ToLower(v); return nil },
	},
	"document.marker": {
		get: func(c *Config) string { return c.Document.Marker },
		set: func(c *Config, v string) error { c.Document.Marker = v; return nil },
	},
	"document.max_trailer_bytes": {
		get: func(c *Config) string { return strconv.FormatInt(c.Document.MaxTrailerBytes, 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("document.max_trailer_bytes must be an integer: %w", err)
			}
			c.Document.MaxTrailerBytes = n
			return nil
		},
	},
	"audit.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Audit.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("audit.enabled must be true or false: %w", err)
			}
			c.Audit.Enabled = b
			return nil
		},
	},
}

// Keys lists the dotted keys Set and Get accept, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "crypto.suite".
func (c *Config) Get(key string) (string, error) {
	s, ok := settable[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return s.get(c), nil
}

// Set assigns a dotted key and validates the result. On error c is unchanged.
func (c *Config) Set(key, value string) error {
	s, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	updated := *c
	if err := s.set(&updated, value); err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*c = updated
	return nil
}
