/*
Package handler provides the HTTP handler for the self-hosted presign endpoint.

When S3 storage is configured instead of an external presign service, this
endpoint issues the {uploadUrl, fileUrl} pair itself, in the exact wire shape
the presign client consumes.
*/
package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"userdeck/internal/app/storage"
	"userdeck/internal/app/user"
	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/logx"
	"userdeck/internal/pkg/resp"
)

// HandleGeneratePresignedURL creates an HTTP HandlerFunc that issues a
// time-limited presigned upload URL plus the final public URL for a named,
// typed file. The response body is the bare slot object, not the standard
// envelope, so external and self-hosted presign services are interchangeable.
func HandleGeneratePresignedURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		fileName := query.Get("filename")
		fileType := query.Get("filetype")

		if fileName == "" || fileType == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, ok := user.AllowedMIMETypes[fileType]; !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarTypeInvalid))
			return
		}

		fileExt := strings.ToLower(filepath.Ext(fileName))
		if expected, ok := user.ExtToMIME[fileExt]; !ok || expected != fileType {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarTypeInvalid))
			return
		}

		fileKey := "avatars/" + uuid.New().String() + fileExt

		uploadURL, err := deps.Storage.PresignUpload(
			r.Context(),
			fileKey,
			fileType,
			storage.PresignedURLDuration,
		)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrPresignFailed))
			return
		}

		slot := map[string]string{
			"uploadUrl": uploadURL,
			"fileUrl":   deps.Storage.PublicURL(fileKey),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(slot); err != nil {
			logx.Error(err, "Error encoding presign slot response")
		}
	}
}
