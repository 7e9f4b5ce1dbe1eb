// Package jsonfile provides flat-JSON-file implementations of the
// repository interfaces. Collections are persisted as pretty-printed
// JSON and fully rewritten on every mutation.
//
// Reliability model:
//   - Writes go to a temp file in the same directory and are renamed
//     into place, so a crashed writer never truncates the collection.
//   - A missing file is initialized with an empty default.
//   - An unparseable file is moved aside with a ".backup" suffix and
//     replaced with an empty default; losing the ability to read history
//     is preferable to failing the whole application.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/packlabs/dva-go/internal/domain/repository"
)

const (
	// jsonIndent matches the 2-space indent of the persisted files.
	jsonIndent = "  "

	// backupSuffix is appended to a corrupt file when it is moved aside.
	backupSuffix = ".backup"
)

// writeAtomic marshals v as pretty-printed JSON and replaces path
// atomically: the data is written to a temp file in the same directory,
// synced, and renamed into place.
//
// Parameters:
//   - path: destination file path
//   - v: the value to marshal
//
// Returns:
//   - error: repository.ErrStorageFailed on any I/O or marshal failure
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", repository.ErrStorageFailed, path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", repository.ErrStorageFailed, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", repository.ErrStorageFailed, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", repository.ErrStorageFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", repository.ErrStorageFailed, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", repository.ErrStorageFailed, path, err)
	}
	return nil
}

// loadOrRecover reads a collection file, recovering from the failure
// modes the store contract tolerates. A missing or empty file is
// initialized with the default value. A corrupt file is renamed aside
// with the backup suffix and replaced with the default; that case
// returns the default together with an error wrapping
// repository.ErrCorruptStorage so callers can log the recovery and
// continue.
//
// Parameters:
//   - path: the collection file path
//   - def: the default (empty) collection
//
// Returns:
//   - T: the loaded or substituted collection
//   - error: repository.ErrCorruptStorage after a successful recovery,
//     repository.ErrStorageFailed on unrecoverable I/O failures
func loadOrRecover[T any](path string, def T) (T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeAtomic(path, def); err != nil {
			return def, err
		}
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("%w: read %s: %v", repository.ErrStorageFailed, path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		if err := writeAtomic(path, def); err != nil {
			return def, err
		}
		return def, nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		// Corrupt content: preserve the original bytes aside and start
		// over with an empty collection.
		if renameErr := os.Rename(path, path+backupSuffix); renameErr != nil {
			return def, fmt.Errorf("%w: backup %s: %v", repository.ErrStorageFailed, path, renameErr)
		}
		if err := writeAtomic(path, def); err != nil {
			return def, err
		}
		return def, fmt.Errorf("%w: %s backed up to %s", repository.ErrCorruptStorage, path, path+backupSuffix)
	}
	return out, nil
}
