package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// allowedImageTypes lists the MIME types accepted for avatars
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DetectImage sniffs the content of an uploaded file and returns its MIME type and extension.
// The declared Content-Type and filename are ignored.
func DetectImage(fileHeader *multipart.FileHeader, maxSize int64) (string, string, error) {
	if fileHeader == nil {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidAvatar, "No file provided")
	}
	if fileHeader.Size == 0 {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidAvatar, "Avatar file is empty")
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidAvatar,
			fmt.Sprintf("Avatar exceeds the maximum size of %d bytes", maxSize))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(io.LimitReader(file, 3072))
	if err != nil {
		return "", "", fmt.Errorf("failed to detect file type: %w", err)
	}

	base := strings.ToLower(strings.SplitN(mtype.String(), ";", 2)[0])
	if !allowedImageTypes[base] {
		return "", "", apperrors.NewCustomError(apperrors.ErrInvalidAvatar,
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	return base, mtype.Extension(), nil
}
