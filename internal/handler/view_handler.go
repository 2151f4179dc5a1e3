/*
Package handler provides HTTP handler functions for the view workflows.

This file covers the snapshot endpoint, the detail-view selection, and the
delete workflow (request, cancel, confirm).
*/
package handler

import (
	"net/http"

	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/req"
	"userdeck/internal/pkg/resp"
)

// SelectInput identifies the user a row action targets.
type SelectInput struct {
	ID string `json:"id"`
}

// HandleState returns the current session snapshot for initial page render
// and WebSocket fallback.
func HandleState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleSelect opens the detail view for one user.
func HandleSelect(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SelectInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.ID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if customErr := deps.Session.Select(input.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDeselect closes the detail view.
func HandleDeselect(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Session.CloseDetail()
		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDeleteRequest enters the delete confirmation for one user. No remote
// call happens until the confirmation.
func HandleDeleteRequest(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SelectInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.ID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if customErr := deps.Session.RequestDelete(input.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDeleteCancel discards the pending delete without any network call.
func HandleDeleteCancel(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Session.CancelDelete()
		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}

// HandleDeleteConfirm issues the directory delete for the pending id.
func HandleDeleteConfirm(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := deps.Session.ConfirmDelete(r.Context()); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, deps.Session.Snapshot())
	}
}
