/*
Package handler provides the HTTP handlers and routing setup for the userdeck server.

This file defines the main Router, applying middleware like logging, CORS, and
IP-based rate limiting before delegating requests to the page, the workflow API,
the snapshot WebSocket, and (in self-hosted mode) the presign endpoint.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"userdeck/internal/configs"
	"userdeck/internal/pkg/limiter"
	"userdeck/internal/pkg/logx"
	"userdeck/internal/pkg/resp"
)

const (
	SubmitRate  = 0.5
	SubmitBurst = 3
	DeleteRate  = 0.5
	DeleteBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters for the mutating workflow routes,
// configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	submitLimiter := limiter.NewIPRateLimiter(rate.Limit(SubmitRate), SubmitBurst)
	deleteLimiter := limiter.NewIPRateLimiter(rate.Limit(DeleteRate), DeleteBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "userdeck",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Get("/", HandlePage())
	r.Get("/assets/default-avatar.svg", HandleDefaultAvatar())

	r.Route("/api", func(api chi.Router) {
		api.Get("/state", HandleState(deps))

		api.Route("/users", func(users chi.Router) {
			users.Post("/select", HandleSelect(deps))
			users.Post("/deselect", HandleDeselect(deps))

			users.Route("/draft", func(draft chi.Router) {
				draft.Post("/open", HandleDraftOpen(deps))
				draft.Post("/field", HandleDraftField(deps))
				draft.Post("/avatar-url", HandleDraftAvatarURL(deps))
				draft.Post("/avatar-file", HandleDraftAvatarFile(deps))
				draft.Post("/avatar-clear", HandleDraftAvatarClear(deps))
				draft.Post("/close", HandleDraftClose(deps))

				rateLimitedSubmit := submitLimiter.Middleware(HandleDraftSubmit(deps))
				draft.Post("/submit", http.HandlerFunc(rateLimitedSubmit.ServeHTTP))
			})

			users.Route("/delete", func(del chi.Router) {
				del.Post("/request", HandleDeleteRequest(deps))
				del.Post("/cancel", HandleDeleteCancel(deps))

				rateLimitedConfirm := deleteLimiter.Middleware(HandleDeleteConfirm(deps))
				del.Post("/confirm", http.HandlerFunc(rateLimitedConfirm.ServeHTTP))
			})
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, deps))

	if deps.Config.PresignMode() == configs.PresignSelfHosted && deps.Storage != nil {
		r.Get("/generate-presigned-url", HandleGeneratePresignedURL(deps))
	}

	return r
}
