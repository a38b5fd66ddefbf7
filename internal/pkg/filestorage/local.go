package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidPath is returned for URLs that do not point inside the store
var ErrInvalidPath = errors.New("invalid file path")

// Storage saves uploaded files and resolves their public URLs
type Storage interface {
	Save(subPath, filename string, r io.Reader) (string, error)
	Delete(fileURL string) error
}

// LocalStorage keeps files on the local filesystem
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // public prefix the files are served under
	logger   zerolog.Logger
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath, baseURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// BasePath returns the directory files are written to
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Save writes r under subPath with a generated name that keeps the original
// extension, and returns the public URL.
func (ls *LocalStorage) Save(subPath, filename string, r io.Reader) (string, error) {
	subPath = path.Clean("/" + filepath.ToSlash(subPath))[1:]

	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := ls.baseURL + "/" + path.Join(subPath, name)
	ls.logger.Info().Str("filename", filename).Str("url", url).Msg("File saved")
	return url, nil
}

// Delete removes the file behind a URL returned by Save. Missing files are
// not an error.
func (ls *LocalStorage) Delete(fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, ls.baseURL+"/")
	if !ok || rel == "" {
		return ErrInvalidPath
	}
	cleaned := path.Clean(rel)
	if cleaned == "." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return ErrInvalidPath
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(cleaned))
	if err := os.Remove(physicalPath); err != nil && !os.IsNotExist(err) {
		ls.logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
