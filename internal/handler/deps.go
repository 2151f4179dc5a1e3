package handler

import (
	"userdeck/internal/app/session"
	"userdeck/internal/app/storage"
	"userdeck/internal/configs"
)

// AppDeps bundles the collaborators the HTTP handlers need.
type AppDeps struct {
	Session *session.Session
	Config  *configs.AppConfig

	// Storage backs the self-hosted presign endpoint; nil in external or
	// disabled presign modes.
	Storage storage.StorageService
}
