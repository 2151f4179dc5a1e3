/*
Package user contains the core data structures for user records and the
new-user draft.

It defines the Record struct mirroring the remote user directory's wire shape,
and the Draft struct holding the in-progress add-user form state, including the
tagged avatar input (raw URL or staged file).
*/
package user

import (
	"userdeck/internal/pkg/errs"
)

// Record represents a single user as stored by the remote user directory.
// The id is assigned by the directory on creation and is never generated locally.
type Record struct {

	// ID is the opaque unique identifier assigned by the remote directory.
	ID string `json:"id"`

	// FirstName is the user's display name.
	FirstName string `json:"firstName"`

	// Age is the user's age in years.
	Age int `json:"age"`

	// CompanyID is an optional reference to the user's company.
	CompanyID string `json:"companyId,omitempty"`

	// Avatar is an optional URL of the user's avatar image.
	Avatar string `json:"avatar,omitempty"`
}

// AvatarKind tags the avatar input variant of a draft.
type AvatarKind string

const (
	// AvatarNone means no avatar has been provided.
	AvatarNone AvatarKind = "none"

	// AvatarURL means the operator typed a raw avatar URL directly.
	AvatarURL AvatarKind = "url"

	// AvatarFile means the operator staged a local image file for upload.
	AvatarFile AvatarKind = "file"
)

// AvatarInput is the tagged avatar variant of a draft. The raw-URL and
// staged-file entry points are distinct submission modes and are never merged:
// exactly one of URL and File is meaningful, selected by Kind.
type AvatarInput struct {
	Kind AvatarKind
	URL  string
	File *StagedFile
}

// AvatarInputNone returns the empty avatar input.
func AvatarInputNone() AvatarInput {
	return AvatarInput{Kind: AvatarNone}
}

// AvatarInputURL returns an avatar input carrying a raw URL.
func AvatarInputURL(url string) AvatarInput {
	return AvatarInput{Kind: AvatarURL, URL: url}
}

// AvatarInputFile returns an avatar input carrying a staged file.
func AvatarInputFile(file *StagedFile) AvatarInput {
	return AvatarInput{Kind: AvatarFile, File: file}
}

// Draft holds the transient add-user form state. It exists only while the
// add-user workflow is open and is discarded on close or successful submission.
type Draft struct {
	FirstName string
	Age       int
	CompanyID string
	Avatar    AvatarInput
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{Avatar: AvatarInputNone()}
}

// Validate checks the required-field constraints: a non-empty first name and a
// positive age. CompanyID and Avatar are optional.
func (d *Draft) Validate() *errs.CustomError {
	if d.FirstName == "" || d.Age <= 0 {
		return errs.NewError(errs.ErrDraftInvalid)
	}
	return nil
}
