package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// LoadEnvFile exports the variables in path so NewConfig picks them up.
// Variables already set in the environment win. An explicitly requested
// file must exist.
func LoadEnvFile(path string) error {
	required := path != ""
	if !required {
		path = DefaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env (%s): %w", path, err)
}
