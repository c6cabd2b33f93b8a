package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/errutil"
)

type eventResponse struct {
	Status         string   `json:"status"`
	Kind           string   `json:"kind"`
	InstallationID int64    `json:"installation_id"`
	Delta          []string `json:"delta"`
	Notified       int      `json:"notified"`
	Failed         int      `json:"failed"`
	NoOp           bool     `json:"noop"`
}

func newEventResponse(result *model.ReconcileResult) *eventResponse {
	resp := &eventResponse{
		Status:         "ok",
		Kind:           string(result.Kind),
		InstallationID: int64(result.InstallationID),
		Delta:          make([]string, len(result.Delta)),
		Notified:       result.Delivered(),
		Failed:         len(result.DeliveryFailures) + len(result.LookupFailures),
		NoOp:           result.NoOp,
	}
	for i, repo := range result.Delta {
		resp.Delta[i] = repo.String()
	}
	return resp
}

type installationResponse struct {
	ID          int64      `json:"id"`
	Account     string     `json:"account"`
	AccountType string     `json:"account_type"`
	AppSlug     string     `json:"app_slug"`
	InstalledAt time.Time  `json:"installed_at"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
}

type installationReposResponse struct {
	InstallationID int64    `json:"installation_id"`
	Repositories   []string `json:"repositories"`
}

type coverageResponse struct {
	Repo           string `json:"repo"`
	InstallationID *int64 `json:"installation_id"`
	Mode           string `json:"mode"`
}

func handleListInstallations(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		installations, err := uc.ListInstallations(r.Context())
		if err != nil {
			errutil.HandleError(r.Context(), "fail to list installations", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		resp := make([]installationResponse, len(installations))
		for i, inst := range installations {
			resp[i] = installationResponse{
				ID:          int64(inst.ID),
				Account:     inst.Account.Login,
				AccountType: string(inst.Account.Type),
				AppSlug:     string(inst.AppSlug),
				InstalledAt: inst.InstalledAt,
				SuspendedAt: inst.SuspendedAt,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleInstallationRepos(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			err = goerr.Wrap(types.ErrValidationFailed, "invalid installation ID", goerr.V("id", chi.URLParam(r, "id")))
			writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		repos, err := uc.InstallationRepos(r.Context(), types.GitHubAppInstallID(id))
		if err != nil {
			errutil.HandleError(r.Context(), "fail to get installation repos", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		resp := installationReposResponse{
			InstallationID: id,
			Repositories:   make([]string, len(repos)),
		}
		for i, repo := range repos {
			resp.Repositories[i] = repo.String()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleCoverage(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repo := types.NewRepoFullName(chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))
		if err := repo.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		covered, err := uc.CoverageOf(r.Context(), repo)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to get coverage", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		mode, err := uc.DeliveryModeOf(r.Context(), repo)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to get delivery mode", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		resp := coverageResponse{
			Repo: repo.String(),
			Mode: string(mode),
		}
		if id, ok := covered.Get(); ok {
			v := int64(id)
			resp.InstallationID = &v
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
