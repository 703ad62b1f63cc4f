// Package imagestore is the blob-storage collaborator for category and
// product images. The core only sees the Store interface; failures on
// delete are logged, never propagated.
package imagestore

import (
	"context"
	"mime/multipart"

	"github.com/tradecove/catalog-service/internal/apperrors"
)

const maxFileSize = 5 * 1024 * 1024 // 5MB

type Store interface {
	// Upload stores one image and returns its public URL.
	Upload(ctx context.Context, file *multipart.FileHeader, folder, identifier string) (string, error)

	// UploadMany is all-or-nothing: a failure mid-batch deletes the
	// already-uploaded items best-effort before surfacing the error.
	UploadMany(ctx context.Context, files []*multipart.FileHeader, folder, identifier string) ([]string, error)

	// Delete is best-effort; failures are logged, not returned.
	Delete(ctx context.Context, imageURL string)
	DeleteMany(ctx context.Context, imageURLs []string)
}

var allowedFormats = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

func validateFile(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return apperrors.InvalidRequest("file cannot be empty")
	}
	if file.Size > maxFileSize {
		return apperrors.InvalidRequest("file size exceeds maximum limit of 5MB")
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedFormats[contentType] {
		return apperrors.InvalidRequest("only JPEG, PNG and WebP images are allowed, got %q", contentType)
	}
	return nil
}
