package remote

import (
	"crypto/md5" //nolint:gosec // identity digest, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
)

// BuildID returns "{applicationName}-{projectName}-{digest}" where digest is
// the 32 character hex MD5 of the project directory's canonical path.
//
// The digest depends only on where the directory is, never on what it
// contains, so adding files or touching the directory keeps the id stable.
// Symlinks are resolved, so a link to a directory shares the target's id.
func BuildID(applicationName, projectName, projectDir string) (string, error) {
	dir, err := CanonicalDir(projectDir)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(dir)) //nolint:gosec // see import
	return fmt.Sprintf("%s-%s-%s", applicationName, projectName, hex.EncodeToString(sum[:])), nil
}

// CanonicalDir returns the absolute, symlink-free form of dir. It fails with
// a not_found error when dir does not exist or is not a directory.
func CanonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", foundationerrors.FileSystemError("failed to resolve project directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", statError(abs, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", statError(resolved, err)
	}
	if !info.IsDir() {
		return "", foundationerrors.NotFoundError("project directory not found").
			WithCause(fmt.Errorf("not a directory: %w", fs.ErrNotExist)).
			WithContext("path", resolved).
			Build()
	}
	return resolved, nil
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return foundationerrors.NotFoundError("project directory not found").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return foundationerrors.FileSystemError("failed to inspect project directory").
		WithCause(err).
		WithContext("path", path).
		Build()
}
