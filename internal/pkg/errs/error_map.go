/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: User Directory Workflow Errors
	ErrDirectoryLoadFailed: {Code: ErrDirectoryLoadFailed, Message: "Could not load the user list."},
	ErrUserCreateRejected:  {Code: ErrUserCreateRejected, Message: "The user could not be created. Please try again."},
	ErrUserDeleteRejected:  {Code: ErrUserDeleteRejected, Message: "The user could not be deleted. Please try again."},
	ErrUserNotFound:        {Code: ErrUserNotFound, Message: "User not found."},
	ErrDraftInvalid:        {Code: ErrDraftInvalid, Message: "First name is required and age must be a positive number."},
	ErrNoDraftOpen:         {Code: ErrNoDraftOpen, Message: "No user form is open."},
	ErrNoDeletePending:     {Code: ErrNoDeletePending, Message: "No deletion is pending."},

	// 3xxx: Avatar and Presign Errors
	ErrAvatarTypeInvalid:  {Code: ErrAvatarTypeInvalid, Message: "Avatar must be a JPEG, PNG, WebP, or GIF image."},
	ErrAvatarTooLarge:     {Code: ErrAvatarTooLarge, Message: "Avatar file is too large."},
	ErrPresignFailed:      {Code: ErrPresignFailed, Message: "Could not prepare the avatar upload. Please try again."},
	ErrPresignUnavailable: {Code: ErrPresignUnavailable, Message: "File uploads are not available. Enter an avatar URL instead."},
	ErrAvatarUploadFailed: {Code: ErrAvatarUploadFailed, Message: "Avatar upload failed. Please try again."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
