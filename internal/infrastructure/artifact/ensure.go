package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// EnsureLocal makes sure an artifact exists at path, fetching it from src
// when it does not. The download lands in a temporary file that is renamed
// into place, so a failed fetch never leaves a partial artifact behind.
// It reports whether a fetch happened.
func EnsureLocal(ctx context.Context, path string, src Source, logger *slog.Logger) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat model artifact: %w", err)
	}
	if src == nil {
		return false, fmt.Errorf("model artifact %s does not exist and no source is configured", path)
	}

	logger.Info("downloading model artifact", "source", src.String(), "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return false, fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := src.Fetch(ctx, tmp); err != nil {
		tmp.Close()
		return false, fmt.Errorf("fetch model artifact from %s: %w", src, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("install model artifact: %w", err)
	}

	logger.Info("model artifact downloaded", "path", path)
	return true, nil
}
