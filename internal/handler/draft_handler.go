/*
Package handler provides HTTP handler functions for the add-user workflow.

This file covers the draft lifecycle: open, field edits, the two avatar entry
points (raw URL and staged file), clearing, submission, and close.
*/
package handler

import (
	"io"
	"net/http"

	"userdeck/internal/app/user"
	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/req"
	"userdeck/internal/pkg/resp"
)

// FieldInput carries one draft field edit. Name is constrained to firstName,
// age, and companyId.
type FieldInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AvatarURLInput carries the raw-URL avatar entry point.
type AvatarURLInput struct {
	URL string `json:"url"`
}

// HandleDraftOpen enters the add-user workflow with an empty draft.
func HandleDraftOpen(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Session.OpenAdd()
		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftField applies one field edit to the open draft.
func HandleDraftField(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input FieldInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Session.UpdateField(input.Name, input.Value); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftAvatarURL sets the raw avatar URL on the open draft, skipping the
// presign flow entirely at submission time.
func HandleDraftAvatarURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input AvatarURLInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Session.SetAvatarURL(input.URL); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftAvatarFile stages an avatar image file on the open draft. The
// bytes stay local until submission; the snapshot carries a derived preview.
func HandleDraftAvatarFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFormParseFailed))
			return
		}
		defer file.Close()

		mimeType := header.Header.Get("Content-Type")
		if customErr := user.ValidateAvatarFile(header.Filename, mimeType, header.Size); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFormParseFailed))
			return
		}

		if customErr := deps.Session.StageAvatarFile(header.Filename, mimeType, data); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftAvatarClear drops any staged file or raw URL from the open draft.
func HandleDraftAvatarClear(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := deps.Session.ClearAvatar(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftSubmit runs the submission pipeline. On failure the draft stays
// open for retry and the error also lands in the snapshot for inline display.
func HandleDraftSubmit(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := deps.Session.Submit(r.Context()); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDraftClose abandons the draft unconditionally.
func HandleDraftClose(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Session.CloseAdd()
		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}
