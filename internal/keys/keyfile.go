package keys

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/stegvault/internal/errors"
)

// LoadFile reads a raw key file.
func LoadFile(path string) (Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Key{}, fmt.Errorf("failed to read key file at %s: %w", path, err)
	}
	k, err := Validate(data)
	if err != nil {
		return Key{}, fmt.Errorf("key file %s: %w", path, err)
	}
	return k, nil
}

// SaveFile writes k to path with 0600 permissions, creating parent
// directories. It refuses to replace an existing file.
func SaveFile(path string, k Key) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for key file at %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", kerrors.ErrKeyFileExists, path)
		}
		return fmt.Errorf("failed to create key file at %s: %w", path, err)
	}

	if _, err := f.Write(k.b[:]); err != nil {
		f.Close()
		return fmt.Errorf("failed to write key file at %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close key file: %w", err)
	}
	return nil
}

// LoadOrCreate loads the key at path, generating and saving a new one when
// the file does not exist. created reports whether a new key was written.
func LoadOrCreate(path string) (k Key, created bool, err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		k, err = LoadFile(path)
		return k, false, err
	} else if !os.IsNotExist(statErr) {
		return Key{}, false, fmt.Errorf("failed to check key file at %s: %w", path, statErr)
	}

	k, err = Generate()
	if err != nil {
		return Key{}, false, err
	}
	if err := SaveFile(path, k); err != nil {
		return Key{}, false, err
	}
	return k, true, nil
}
