/*
Package session owns the interaction state driving the user-list page.

This file defines the lifecycle phase, the view state union, and the snapshot
shape pushed to the page after every transition. Exactly one view is active at
any time; the union tag is the only source of truth for which modal is open, so
a pending delete is represented by the ConfirmingDelete state itself rather
than by an id being non-zero.
*/
package session

import (
	"userdeck/internal/app/user"
)

// Phase is the lifecycle phase of the one-time initial load.
type Phase string

const (
	// PhaseLoading means the initial list fetch has not completed yet.
	PhaseLoading Phase = "loading"

	// PhaseReady means the mirror holds the loaded list.
	PhaseReady Phase = "ready"

	// PhaseFailed means the initial load failed; the mirror stays empty and
	// there is no automatic retry.
	PhaseFailed Phase = "failed"
)

// View identifies which view state is active.
type View string

const (
	// ViewIdle shows the plain list with no modal.
	ViewIdle View = "idle"

	// ViewDetail shows the detail modal for one selected user.
	ViewDetail View = "detail"

	// ViewAdding shows the add-user modal with an open draft.
	ViewAdding View = "adding"

	// ViewConfirmingDelete shows the delete confirmation for one pending id.
	ViewConfirmingDelete View = "confirming-delete"
)

// viewState is the tagged view union. detailID is meaningful only for
// ViewDetail and pendingDeleteID only for ViewConfirmingDelete.
type viewState struct {
	kind            View
	detailID        string
	pendingDeleteID string
}

// DraftView is the draft as rendered by the page, including the locally
// derived preview for a staged avatar file.
type DraftView struct {
	FirstName      string `json:"firstName"`
	Age            int    `json:"age"`
	CompanyID      string `json:"companyId"`
	AvatarKind     string `json:"avatarKind"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
	AvatarFileName string `json:"avatarFileName,omitempty"`
	AvatarPreview  string `json:"avatarPreview,omitempty"`
}

// ErrorView carries the last workflow failure for inline display.
type ErrorView struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Snapshot is the full rendering state sent to the page.
type Snapshot struct {
	Phase     Phase  `json:"phase"`
	LoadError string `json:"loadError,omitempty"`

	Users []user.Record `json:"users"`

	View            View         `json:"view"`
	Detail          *user.Record `json:"detail,omitempty"`
	Draft           *DraftView   `json:"draft,omitempty"`
	Submitting      bool         `json:"submitting,omitempty"`
	PendingDeleteID string       `json:"pendingDeleteId,omitempty"`

	FileUploadEnabled bool       `json:"fileUploadEnabled"`
	LastError         *ErrorView `json:"lastError,omitempty"`
}

// draftView renders the current draft, deriving the preview data URL for a
// staged file.
func draftView(d *user.Draft) *DraftView {
	if d == nil {
		return nil
	}

	view := &DraftView{
		FirstName:  d.FirstName,
		Age:        d.Age,
		CompanyID:  d.CompanyID,
		AvatarKind: string(d.Avatar.Kind),
	}

	switch d.Avatar.Kind {
	case user.AvatarURL:
		view.AvatarURL = d.Avatar.URL
	case user.AvatarFile:
		view.AvatarFileName = d.Avatar.File.Name
		view.AvatarPreview = d.Avatar.File.PreviewDataURL()
	}

	return view
}
