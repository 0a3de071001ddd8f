package model

import "errors"

// Image upload constraints.
const (
	MaxImageSizeBytes = 10 * 1024 * 1024
	MaxImageWidth     = 1600
	PostImageFolder   = "posts"
	PostImageExt      = ".jpg"

	ContentTypeJPEG = "image/jpeg"

	ImageCacheControl = "public, max-age=31536000, immutable"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type may be uploaded.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// UploadResult holds the stored object's public URL and its opaque key.
// Only the key is persisted on the Post record.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Media errors
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)
