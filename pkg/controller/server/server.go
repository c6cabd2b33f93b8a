package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/errutil"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"status":"error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// errorStatus maps an error of the event path to a response code. A
// reconciliation failure returns 500 so that the webhook is redelivered.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrValidationFailed), errors.Is(err, types.ErrInvalidGitHubData):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrDataConsistencyViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type config struct {
	ghSecret types.GitHubAppSecret
}

type Option func(*config)

func WithGitHubSecret(secret types.GitHubAppSecret) Option {
	return func(cfg *config) {
		cfg.ghSecret = secret
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Route("/webhook", func(r chi.Router) {
		r.Route("/github", func(r chi.Router) {
			r.Post("/app", func(w http.ResponseWriter, r *http.Request) {
				event, err := validateGitHubAppEvent(r, cfg.ghSecret)
				if err != nil {
					errutil.HandleError(r.Context(), "fail to validate GitHub App event", err)
					writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
					return
				}

				ev := githubEventToLifecycleEvent(r.Context(), event)
				if ev == nil {
					safeWrite(w, http.StatusOK, []byte(`{"status":"ok","message":"event ignored"}`))
					return
				}

				// A client disconnect must not abort an event between the
				// registry commit and the notifications.
				ctx := DetachContext(r.Context())

				result, err := uc.HandleEvent(ctx, ev)
				if err != nil {
					code := errorStatus(err)
					if code != http.StatusBadRequest {
						errutil.HandleError(ctx, "fail to handle lifecycle event", err)
					}
					writeJSON(w, code, errorResponse{Status: "error", Error: err.Error()})
					return
				}

				writeJSON(w, http.StatusOK, newEventResponse(result))
			})
		})
	})
	r.Route("/status", func(r chi.Router) {
		r.Get("/installations", handleListInstallations(uc))
		r.Get("/installations/{id}/repos", handleInstallationRepos(uc))
		r.Get("/coverage/{owner}/{repo}", handleCoverage(uc))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
