package user

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"userdeck/internal/pkg/errs"
)

const (
	// MaxAvatarSizeMB is the maximum allowed avatar file size in megabytes.
	MaxAvatarSizeMB = 5

	// MaxAvatarSize is the maximum allowed avatar file size in bytes.
	MaxAvatarSize = MaxAvatarSizeMB * 1024 * 1024
)

// AllowedMIMETypes defines the set of permitted MIME types for avatar images.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// ExtToMIME maps file extensions to their corresponding MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// StagedFile is an avatar image held locally while the add-user draft is open,
// pending upload through the presign flow at submission time.
type StagedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// PreviewDataURL derives a data URL from the staged bytes for local preview
// rendering. No network I/O is involved.
func (f *StagedFile) PreviewDataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", f.MimeType, base64.StdEncoding.EncodeToString(f.Data))
}

// ValidateAvatarFile checks that the staged file is a supported image type,
// that its extension agrees with the declared MIME type, and that it fits the
// size limit.
func ValidateAvatarFile(fileName, mimeType string, size int64) *errs.CustomError {
	if size <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if size > MaxAvatarSize {
		return errs.NewError(errs.ErrAvatarTooLarge)
	}

	if _, ok := AllowedMIMETypes[mimeType]; !ok {
		return errs.NewError(errs.ErrAvatarTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	expectedMIME, ok := ExtToMIME[ext]
	if !ok || expectedMIME != mimeType {
		return errs.NewError(errs.ErrAvatarTypeInvalid)
	}

	return nil
}
