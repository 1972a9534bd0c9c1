package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // Public URL prefix the root directory is served under
	maxSize  int64  // Upper bound for a single upload in bytes, 0 disables the check
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the directory on the server, baseURL the prefix it is served under (e.g. http://host/uploads).
func NewLocalStorage(basePath, baseURL string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxSize:  maxSize,
	}, nil
}

// BasePath returns the storage root
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveImage validates an uploaded image and saves it to a subdirectory
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	_, ext, err := DetectImage(fileHeader, ls.maxSize)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	// The extension comes from the sniffed type, not the client filename
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relativePath := path.Join(filepath.ToSlash(subPath), uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relativePath).Msg("File saved successfully")
	return relativePath, nil
}

// GetFullPath resolves a stored relative path inside the storage root.
// Paths escaping the root are rejected.
func (ls *LocalStorage) GetFullPath(relativePath string) (string, error) {
	cleaned := path.Clean("/" + filepath.ToSlash(relativePath))
	if cleaned == "/" {
		return "", fmt.Errorf("invalid file path: %q", relativePath)
	}

	root, err := filepath.Abs(ls.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve storage root: %w", err)
	}
	full := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))
	if !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path: %q", relativePath)
	}
	return full, nil
}

// DeleteFile removes a file from the storage filesystem.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(relativePath string) error {
	if relativePath == "" {
		return nil
	}

	physicalPath, err := ls.GetFullPath(relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// URL returns the public URL of a stored file
func (ls *LocalStorage) URL(relativePath string) string {
	if relativePath == "" {
		return ""
	}
	return ls.baseURL + "/" + strings.TrimPrefix(filepath.ToSlash(relativePath), "/")
}
