package config

import (
	"io/fs"

	"github.com/cockroachdb/errors"
)

// viper returns a plain fs error, not ConfigFileNotFoundError, when an
// explicit config file is missing.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
