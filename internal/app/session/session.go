/*
Package session owns the interaction state driving the user-list page.

This file implements the Session: the single owner of the mirror and the four
workflows (initial load, detail view, add user, delete with confirmation). All
mutation goes out to the remote directory first; the mirror and view state only
change after the remote call resolves. Every remote failure is converted into a
local state transition and recorded for inline display; nothing is retried and
nothing propagates past the session.
*/
package session

import (
	"context"
	"strconv"

	"userdeck/internal/app/directory"
	"userdeck/internal/app/mirror"
	"userdeck/internal/app/presign"
	"userdeck/internal/app/user"
	"userdeck/internal/pkg/errs"
	"userdeck/internal/pkg/logx"
)

// Directory is the remote user directory consumed by the session.
type Directory interface {
	List(ctx context.Context) ([]user.Record, *errs.CustomError)
	Create(ctx context.Context, payload directory.CreatePayload) (user.Record, *errs.CustomError)
	Delete(ctx context.Context, id string) *errs.CustomError
}

// Uploader is the presign flow consumed at submission time: request an upload
// slot, then transfer the bytes directly to storage.
type Uploader interface {
	Generate(ctx context.Context, fileName, fileType string) (presign.Slot, *errs.CustomError)
	Upload(ctx context.Context, uploadURL, mimeType string, data []byte) *errs.CustomError
}

// CleanupFunc is invoked after a user has been deleted from the directory,
// with the removed record. Used for best-effort removal of self-hosted avatar
// objects; failures are the callee's problem.
type CleanupFunc func(record user.Record)

// Session is the single-writer state machine behind the page. Handlers may
// call it concurrently; the mutex in the embedded state serializes every
// transition, and remote calls run outside the lock.
type Session struct {
	dir      Directory
	uploader Uploader
	store    *mirror.Store
	cleanup  CleanupFunc

	state stateGuard
}

// NewSession creates a session over the given collaborators. uploader may be
// nil, in which case file-mode avatars are unavailable and only the raw-URL
// entry point works. cleanup may be nil.
func NewSession(dir Directory, uploader Uploader, store *mirror.Store, cleanup CleanupFunc) *Session {
	s := &Session{
		dir:      dir,
		uploader: uploader,
		store:    store,
		cleanup:  cleanup,
	}
	s.state.init()
	return s
}

// Subscribe registers a snapshot channel that receives the current snapshot
// immediately and a fresh one after every transition. The returned function
// unregisters the channel.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	return s.state.subscribe(s.snapshotLocked)
}

// Snapshot returns the current rendering state.
func (s *Session) Snapshot() Snapshot {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked builds a snapshot. Callers must hold the state lock.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:             s.state.phase,
		LoadError:         s.state.loadError,
		Users:             s.store.Snapshot(),
		View:              s.state.view.kind,
		Submitting:        s.state.submitting,
		FileUploadEnabled: s.uploader != nil,
	}

	switch s.state.view.kind {
	case ViewDetail:
		if record, ok := s.store.Get(s.state.view.detailID); ok {
			snap.Detail = &record
		}
	case ViewAdding:
		snap.Draft = draftView(s.state.draft)
	case ViewConfirmingDelete:
		snap.PendingDeleteID = s.state.view.pendingDeleteID
	}

	if s.state.lastError != nil {
		snap.LastError = &ErrorView{
			Code:    s.state.lastError.Code,
			Message: s.state.lastError.Message,
		}
	}

	return snap
}

// Load performs the one-time initial fetch of the user list. Repeat calls
// after the first activation are no-ops. On failure the mirror stays empty and
// the failure description is carried in the failed phase.
func (s *Session) Load(ctx context.Context) {
	s.state.mu.Lock()
	if s.state.loadStarted {
		s.state.mu.Unlock()
		return
	}
	s.state.loadStarted = true
	s.state.mu.Unlock()

	records, loadErr := s.dir.List(ctx)

	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if loadErr != nil {
		s.state.phase = PhaseFailed
		s.state.loadError = loadErr.Message
		return
	}

	s.store.Replace(records)
	s.state.phase = PhaseReady
	logx.Info("User list loaded.", "count", len(records))
}

// Select opens the detail view for the user with the given id.
func (s *Session) Select(id string) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if _, ok := s.store.Get(id); !ok {
		return errs.NewError(errs.ErrUserNotFound)
	}

	s.state.view = viewState{kind: ViewDetail, detailID: id}
	return nil
}

// CloseDetail closes the detail view if it is open. No-op otherwise.
func (s *Session) CloseDetail() {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind == ViewDetail {
		s.state.view = viewState{kind: ViewIdle}
	}
}

// OpenAdd enters the add-user workflow with a fresh empty draft.
func (s *Session) OpenAdd() {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	s.state.view = viewState{kind: ViewAdding}
	s.state.draft = user.NewDraft()
	s.state.lastError = nil
}

// UpdateField mutates one draft field. name is constrained to firstName, age,
// and companyId; age must parse as an integer.
func (s *Session) UpdateField(name, value string) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind != ViewAdding || s.state.draft == nil {
		return errs.NewError(errs.ErrNoDraftOpen)
	}

	switch name {
	case "firstName":
		s.state.draft.FirstName = value
	case "age":
		if value == "" {
			s.state.draft.Age = 0
			return nil
		}
		age, err := strconv.Atoi(value)
		if err != nil {
			return errs.NewError(errs.ErrInvalidParams)
		}
		s.state.draft.Age = age
	case "companyId":
		s.state.draft.CompanyID = value
	default:
		return errs.NewError(errs.ErrInvalidParams)
	}

	return nil
}

// SetAvatarURL switches the draft avatar to the raw-URL entry point. An empty
// URL clears the avatar.
func (s *Session) SetAvatarURL(rawURL string) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind != ViewAdding || s.state.draft == nil {
		return errs.NewError(errs.ErrNoDraftOpen)
	}

	if rawURL == "" {
		s.state.draft.Avatar = user.AvatarInputNone()
		return nil
	}

	s.state.draft.Avatar = user.AvatarInputURL(rawURL)
	return nil
}

// StageAvatarFile switches the draft avatar to the file entry point, holding
// the bytes locally until submission. At most one file is staged; staging a
// new one replaces the previous.
func (s *Session) StageAvatarFile(fileName, mimeType string, data []byte) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind != ViewAdding || s.state.draft == nil {
		return errs.NewError(errs.ErrNoDraftOpen)
	}

	if s.uploader == nil {
		return errs.NewError(errs.ErrPresignUnavailable)
	}

	if customErr := user.ValidateAvatarFile(fileName, mimeType, int64(len(data))); customErr != nil {
		return customErr
	}

	s.state.draft.Avatar = user.AvatarInputFile(&user.StagedFile{
		Name:     fileName,
		MimeType: mimeType,
		Data:     data,
	})
	return nil
}

// ClearAvatar discards any staged file or raw URL, clearing the preview.
func (s *Session) ClearAvatar() *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind != ViewAdding || s.state.draft == nil {
		return errs.NewError(errs.ErrNoDraftOpen)
	}

	s.state.draft.Avatar = user.AvatarInputNone()
	return nil
}

// Submit runs the sequential submission pipeline: presign and upload when a
// file is staged, then create the record in the directory. Each step waits for
// the prior step's result and any failure short-circuits the remainder,
// leaving the draft (including the staged file) intact so the operator can
// retry. On success the returned record joins the mirror, the draft is
// discarded, and the workflow closes.
func (s *Session) Submit(ctx context.Context) *errs.CustomError {
	s.state.mu.Lock()
	if s.state.view.kind != ViewAdding || s.state.draft == nil {
		s.state.mu.Unlock()
		return errs.NewError(errs.ErrNoDraftOpen)
	}
	if s.state.submitting {
		s.state.mu.Unlock()
		return errs.NewError(errs.ErrInvalidParams)
	}

	draft := *s.state.draft
	if customErr := draft.Validate(); customErr != nil {
		s.state.lastError = customErr
		s.state.unlockAndBroadcast(s.snapshotLocked)
		return customErr
	}

	s.state.submitting = true
	s.state.lastError = nil
	s.state.unlockAndBroadcast(s.snapshotLocked)

	avatar, customErr := s.resolveAvatar(ctx, draft.Avatar)
	if customErr != nil {
		return s.failSubmit(customErr)
	}

	created, customErr := s.dir.Create(ctx, directory.CreatePayload{
		FirstName: draft.FirstName,
		Age:       draft.Age,
		CompanyID: draft.CompanyID,
		Avatar:    avatar,
	})
	if customErr != nil {
		return s.failSubmit(customErr)
	}

	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	s.store.Append(created)
	s.state.submitting = false
	s.state.draft = nil
	s.state.lastError = nil
	if s.state.view.kind == ViewAdding {
		s.state.view = viewState{kind: ViewIdle}
	}

	logx.Info("User created.", "user_id", created.ID)
	return nil
}

// resolveAvatar turns the draft's avatar input into the value for the create
// payload: nil for none, the literal URL for the raw-URL mode, and the presign
// slot's public file URL after a successful direct upload for the file mode.
func (s *Session) resolveAvatar(ctx context.Context, input user.AvatarInput) (*string, *errs.CustomError) {
	switch input.Kind {
	case user.AvatarURL:
		url := input.URL
		return &url, nil

	case user.AvatarFile:
		if s.uploader == nil {
			return nil, errs.NewError(errs.ErrPresignUnavailable)
		}

		slot, customErr := s.uploader.Generate(ctx, input.File.Name, input.File.MimeType)
		if customErr != nil {
			return nil, customErr
		}

		if customErr := s.uploader.Upload(ctx, slot.UploadURL, input.File.MimeType, input.File.Data); customErr != nil {
			return nil, customErr
		}

		return &slot.FileURL, nil
	}

	return nil, nil
}

// failSubmit records a submission failure, keeping the modal open with the
// draft intact.
func (s *Session) failSubmit(customErr *errs.CustomError) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	s.state.submitting = false
	s.state.lastError = customErr
	return customErr
}

// CloseAdd abandons the current draft and any staged file unconditionally.
// Safe to call repeatedly.
func (s *Session) CloseAdd() {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	s.state.draft = nil
	s.state.submitting = false
	if s.state.view.kind == ViewAdding {
		s.state.view = viewState{kind: ViewIdle}
	}
}

// RequestDelete enters the delete confirmation for the given id. The remote
// directory is not touched yet, and a detail selection is never implied:
// deletion is a sibling action on the row, not navigation.
func (s *Session) RequestDelete(id string) *errs.CustomError {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if _, ok := s.store.Get(id); !ok {
		return errs.NewError(errs.ErrUserNotFound)
	}

	s.state.view = viewState{kind: ViewConfirmingDelete, pendingDeleteID: id}
	s.state.lastError = nil
	return nil
}

// CancelDelete returns to the idle view, discarding the pending id. No
// network call is made. Safe to call when nothing is pending.
func (s *Session) CancelDelete() {
	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind == ViewConfirmingDelete {
		s.state.view = viewState{kind: ViewIdle}
	}
}

// ConfirmDelete issues the delete call for the pending id. On success the
// record leaves the mirror; on failure the mirror is untouched so the record
// still shows, and the operator must re-request the deletion. Either way the
// confirmation closes.
func (s *Session) ConfirmDelete(ctx context.Context) *errs.CustomError {
	s.state.mu.Lock()
	if s.state.view.kind != ViewConfirmingDelete {
		s.state.mu.Unlock()
		return errs.NewError(errs.ErrNoDeletePending)
	}
	id := s.state.view.pendingDeleteID
	record, _ := s.store.Get(id)
	s.state.mu.Unlock()

	deleteErr := s.dir.Delete(ctx, id)

	s.state.mu.Lock()
	defer s.state.unlockAndBroadcast(s.snapshotLocked)

	if s.state.view.kind == ViewConfirmingDelete && s.state.view.pendingDeleteID == id {
		s.state.view = viewState{kind: ViewIdle}
	}

	if deleteErr != nil {
		s.state.lastError = deleteErr
		return deleteErr
	}

	s.store.Remove(id)
	s.state.lastError = nil
	logx.Info("User deleted.", "user_id", id)

	if s.cleanup != nil {
		go s.cleanup(record)
	}

	return nil
}
