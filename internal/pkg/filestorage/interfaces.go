package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveImage validates an uploaded image and stores it under subPath.
	// It returns the path relative to the storage root, e.g. "avatars/<uuid>.png".
	SaveImage(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage. Missing files are not an error.
	DeleteFile(relativePath string) error

	// URL returns the public URL for a stored relative path
	URL(relativePath string) string

	// GetFullPath returns the full filesystem path for a stored relative path
	GetFullPath(relativePath string) (string, error)
}
