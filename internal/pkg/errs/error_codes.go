/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with the interface page.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: User Directory Workflow Errors
const (
	// ErrDirectoryLoadFailed indicates that the initial user list fetch from
	// the remote directory failed.
	ErrDirectoryLoadFailed = 2101

	// ErrUserCreateRejected indicates that the remote directory rejected the
	// create-user request.
	ErrUserCreateRejected = 2102

	// ErrUserDeleteRejected indicates that the remote directory rejected the
	// delete-user request.
	ErrUserDeleteRejected = 2103

	// ErrUserNotFound indicates that the referenced user id is not present in
	// the local mirror.
	ErrUserNotFound = 2104

	// ErrDraftInvalid indicates that the new-user draft failed validation.
	ErrDraftInvalid = 2201

	// ErrNoDraftOpen indicates a draft operation was requested while the
	// add-user workflow is closed.
	ErrNoDraftOpen = 2202

	// ErrNoDeletePending indicates a delete confirmation was requested while
	// no delete is pending.
	ErrNoDeletePending = 2203
)

// 3xxx: Avatar and Presign Errors
const (
	// ErrAvatarTypeInvalid indicates that the staged avatar file is not an
	// allowed image type.
	ErrAvatarTypeInvalid = 3001

	// ErrAvatarTooLarge indicates that the staged avatar file exceeds the size limit.
	ErrAvatarTooLarge = 3002

	// ErrPresignFailed indicates that the presign service was unreachable or
	// rejected the upload slot request.
	ErrPresignFailed = 3101

	// ErrPresignUnavailable indicates that no presign backend is configured,
	// so file uploads are not available.
	ErrPresignUnavailable = 3102

	// ErrAvatarUploadFailed indicates that transferring the avatar bytes to
	// the presigned URL failed.
	ErrAvatarUploadFailed = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
