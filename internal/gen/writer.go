package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"bridge-generator/internal/logging"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory, or
// removes it when it is marked stale. Files whose content is unchanged are
// left untouched.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		path := file.Path()

		if file.Remove {
			err := os.Remove(path)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("removing file %s: %w", path, err)
			}

			logging.Logger().Info("removed stale file", zap.String("file", path))

			continue
		}

		if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, file.Content) {
			logging.Logger().Debug("file up to date", zap.String("file", path))

			continue
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", path, err)
		}

		logging.Logger().Info("wrote file", zap.String("file", path), zap.Int("bytes", len(file.Content)))
	}

	return nil
}

// Outdated returns the paths of files whose on-disk state differs from the
// generated one.
func Outdated(files []GeneratedFile) ([]string, error) {
	var out []string

	for _, file := range files {
		path := file.Path()

		old, err := os.ReadFile(path)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			if !file.Remove {
				out = append(out, path)
			}
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		case file.Remove || !bytes.Equal(old, file.Content):
			out = append(out, path)
		}
	}

	return out, nil
}
