package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// LocalStorage saves uploaded files on the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // URL prefix for accessing stored files
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL is
// prepended to returned file paths so callers get directly servable URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath saves an uploaded file into a subdirectory of the storage
// root. The file is stored under a random UUID name to prevent collisions.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := strings.TrimRight(ls.baseURL, "/")
	if subPath != "" {
		accessiblePath += "/" + subPath
	}
	accessiblePath += "/" + uniqueFilename

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("savedAs", uniqueFilename).
		Str("path", accessiblePath).
		Msg("File saved")
	return accessiblePath, nil
}

// SaveFile saves an uploaded file directly under the storage root.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// DeleteFile removes a stored file given its accessible path or URL.
// Deleting a file that no longer exists is treated as success.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	// The accessible path ends with <subdir>/<uuid-name>; keep both parts so
	// files in subdirectories resolve correctly.
	parts := strings.Split(strings.TrimRight(filePath, "/"), "/")
	if len(parts) == 0 {
		return fmt.Errorf("invalid file path: %s", filePath)
	}
	rel := parts[len(parts)-1]
	if len(parts) >= 2 {
		switch parts[len(parts)-2] {
		case AssignmentsDir, SubmissionsDir:
			rel = filepath.Join(parts[len(parts)-2], rel)
		}
	}
	if rel == "" || rel == "." {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, rel)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
