package util

import (
	"errors"
	"os"
)

// DirPerm is used for every directory the service creates.
const DirPerm = 0o755

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty directory path")
	}
	return os.MkdirAll(path, DirPerm)
}
