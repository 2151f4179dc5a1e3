package handler

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var pageHTML []byte

//go:embed web/default-avatar.svg
var defaultAvatarSVG []byte

// HandlePage serves the embedded single-page interface.
func HandlePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(pageHTML)
	}
}

// HandleDefaultAvatar serves the fallback avatar placeholder used when a
// user's avatar URL fails to load.
func HandleDefaultAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(defaultAvatarSVG)
	}
}
