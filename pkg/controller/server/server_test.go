package server_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/controller/server"
	"github.com/secmon-lab/octorelay/pkg/domain/mock"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra"
	"github.com/secmon-lab/octorelay/pkg/usecase"
)

const testSecret = types.GitHubAppSecret("test-secret")

const installationCreatedPayload = `{
  "action": "created",
  "installation": {
    "id": 123,
    "app_slug": "octorelay",
    "account": {"login": "octo", "type": "Organization"},
    "created_at": "2024-01-02T03:04:05Z"
  },
  "repositories": [
    {"full_name": "octo/repo1"},
    {"full_name": "octo/repo2"}
  ]
}`

func newWebhookRequest(t *testing.T, eventType string, body []byte, secret types.GitHubAppSecret) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/github/app", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "00000000-0000-0000-0000-000000000000")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	req.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	return req
}

func TestServerConfiguration(t *testing.T) {
	t.Run("server accepts GitHub secret configuration", func(t *testing.T) {
		clients := infra.New()
		uc := usecase.New(clients)

		srv := server.New(uc, server.WithGitHubSecret(types.GitHubAppSecret("test-secret-12345")))
		_ = srv.Mux()
	})
}

func TestRouterSmokeTests(t *testing.T) {
	t.Run("GET /health returns 200", func(t *testing.T) {
		clients := infra.New()
		uc := usecase.New(clients)
		srv := server.New(uc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("POST /webhook/github/app without signature", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		body := []byte(installationCreatedPayload)
		req := httptest.NewRequest(http.MethodPost, "/webhook/github/app", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", "installation")
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, len(mockUC.HandleEventCalls())).Equal(0)
	})

	t.Run("POST /webhook/github/app with wrong signature", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		req := newWebhookRequest(t, "installation", []byte(installationCreatedPayload), "other-secret")
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, len(mockUC.HandleEventCalls())).Equal(0)
	})
}

func TestWebhookInstallationEvent(t *testing.T) {
	t.Run("installation created is handled", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			HandleEventFunc: func(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error) {
				return &model.ReconcileResult{
					Kind:           ev.Kind(),
					InstallationID: ev.InstallationID(),
					Delta:          []types.RepoFullName{"octo/repo1", "octo/repo2"},
					Transition:     types.TransitionEnabled,
					Notifications: []model.Notification{
						{ChannelID: "C1", Repo: "octo/repo1", Transition: types.TransitionEnabled, Reason: ev.Kind()},
						{ChannelID: "C2", Repo: "octo/repo2", Transition: types.TransitionEnabled, Reason: ev.Kind()},
					},
					DeliveryFailures: []model.DeliveryFailure{
						{ChannelID: "C2", Err: types.ErrDeliveryFailed},
					},
				}, nil
			},
		}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		req := newWebhookRequest(t, "installation", []byte(installationCreatedPayload), testSecret)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Header().Get("Content-Type")).Equal("application/json")

		calls := mockUC.HandleEventCalls()
		gt.V(t, len(calls)).Equal(1)
		created, ok := calls[0].Ev.(model.InstallationCreatedEvent)
		gt.True(t, ok)
		gt.V(t, created.Installation.ID).Equal(types.GitHubAppInstallID(123))
		gt.V(t, created.Repositories).Equal([]types.RepoFullName{"octo/repo1", "octo/repo2"})

		var resp struct {
			Status         string   `json:"status"`
			Kind           string   `json:"kind"`
			InstallationID int64    `json:"installation_id"`
			Delta          []string `json:"delta"`
			Notified       int      `json:"notified"`
			Failed         int      `json:"failed"`
			NoOp           bool     `json:"noop"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp.Status).Equal("ok")
		gt.V(t, resp.Kind).Equal("installation_created")
		gt.V(t, resp.InstallationID).Equal(int64(123))
		gt.V(t, resp.Delta).Equal([]string{"octo/repo1", "octo/repo2"})
		gt.V(t, resp.Notified).Equal(1)
		gt.V(t, resp.Failed).Equal(1)
		gt.False(t, resp.NoOp)
	})

	t.Run("request context cancellation does not reach the usecase", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			HandleEventFunc: func(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error) {
				gt.NoError(t, ctx.Err())
				return &model.ReconcileResult{Kind: ev.Kind(), InstallationID: ev.InstallationID()}, nil
			},
		}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		ctx, cancel := context.WithCancel(context.Background())
		req := newWebhookRequest(t, "installation", []byte(installationCreatedPayload), testSecret).WithContext(ctx)
		rec := httptest.NewRecorder()

		// The body is already buffered, so the handler can still read it.
		cancel()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, len(mockUC.HandleEventCalls())).Equal(1)
	})

	t.Run("installation_repositories removed is handled", func(t *testing.T) {
		body := []byte(`{
  "action": "removed",
  "installation": {"id": 123, "account": {"login": "octo", "type": "Organization"}},
  "repositories_removed": [{"full_name": "octo/repo1"}]
}`)
		mockUC := &mock.UseCaseMock{
			HandleEventFunc: func(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error) {
				return &model.ReconcileResult{Kind: ev.Kind(), InstallationID: ev.InstallationID()}, nil
			},
		}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		req := newWebhookRequest(t, "installation_repositories", body, testSecret)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		calls := mockUC.HandleEventCalls()
		gt.V(t, len(calls)).Equal(1)
		removed, ok := calls[0].Ev.(model.RepositoriesRemovedEvent)
		gt.True(t, ok)
		gt.V(t, removed.Repositories).Equal([]types.RepoFullName{"octo/repo1"})
	})

	t.Run("unrelated event is ignored", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

		req := newWebhookRequest(t, "ping", []byte(`{"zen":"Keep it logically awesome.","hook_id":1}`), testSecret)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"status":"ok","message":"event ignored"}`)
		gt.V(t, len(mockUC.HandleEventCalls())).Equal(0)
	})

	t.Run("usecase errors are mapped to status codes", func(t *testing.T) {
		testCases := []struct {
			name string
			err  error
			code int
		}{
			{
				name: "validation failure",
				err:  goerr.Wrap(types.ErrValidationFailed, "installation ID is empty"),
				code: http.StatusBadRequest,
			},
			{
				name: "data consistency violation",
				err:  goerr.Wrap(types.ErrDataConsistencyViolation, "repository is covered by another installation"),
				code: http.StatusConflict,
			},
			{
				name: "reconciliation failure",
				err:  goerr.Wrap(errors.Join(types.ErrReconciliationFailed, errors.New("connection reset")), "failed to apply event"),
				code: http.StatusInternalServerError,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				mockUC := &mock.UseCaseMock{
					HandleEventFunc: func(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error) {
						return nil, tc.err
					},
				}
				srv := server.New(mockUC, server.WithGitHubSecret(testSecret))

				req := newWebhookRequest(t, "installation", []byte(installationCreatedPayload), testSecret)
				rec := httptest.NewRecorder()
				srv.Mux().ServeHTTP(rec, req)

				gt.V(t, rec.Code).Equal(tc.code)

				var resp struct {
					Status string `json:"status"`
					Error  string `json:"error"`
				}
				gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				gt.V(t, resp.Status).Equal("error")
				gt.V(t, resp.Error).NotEqual("")
			})
		}
	})
}

func TestErrorStatus(t *testing.T) {
	gt.V(t, server.ErrorStatusForTest(types.ErrInvalidGitHubData)).Equal(http.StatusBadRequest)
	gt.V(t, server.ErrorStatusForTest(goerr.Wrap(types.ErrDataConsistencyViolation, "x"))).Equal(http.StatusConflict)
	gt.V(t, server.ErrorStatusForTest(errors.New("unknown"))).Equal(http.StatusInternalServerError)
}

func TestStatusEndpoints(t *testing.T) {
	installedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	suspendedAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mockUC := &mock.UseCaseMock{
		ListInstallationsFunc: func(ctx context.Context) ([]*model.Installation, error) {
			return []*model.Installation{
				{
					ID:          1,
					Account:     model.Account{Login: "octo", Type: types.AccountTypeOrganization},
					AppSlug:     "octorelay",
					InstalledAt: installedAt,
				},
				{
					ID:          2,
					Account:     model.Account{Login: "alice", Type: types.AccountTypeUser},
					AppSlug:     "octorelay",
					InstalledAt: installedAt,
					SuspendedAt: &suspendedAt,
				},
			}, nil
		},
		InstallationReposFunc: func(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
			if id != 1 {
				return nil, nil
			}
			return []types.RepoFullName{"octo/repo1", "octo/repo2"}, nil
		},
		CoverageOfFunc: func(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error) {
			if repo == "octo/repo1" {
				return mo.Some(types.GitHubAppInstallID(1)), nil
			}
			return mo.None[types.GitHubAppInstallID](), nil
		},
		DeliveryModeOfFunc: func(ctx context.Context, repo types.RepoFullName) (types.DeliveryMode, error) {
			if repo == "octo/repo1" {
				return types.DeliveryModePush, nil
			}
			return types.DeliveryModePoll, nil
		},
	}
	srv := server.New(mockUC)

	serve := func(t *testing.T, path string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)
		return rec
	}

	t.Run("list installations", func(t *testing.T) {
		rec := serve(t, "/status/installations")
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var resp []struct {
			ID          int64      `json:"id"`
			Account     string     `json:"account"`
			AccountType string     `json:"account_type"`
			SuspendedAt *time.Time `json:"suspended_at"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, len(resp)).Equal(2)
		gt.V(t, resp[0].Account).Equal("octo")
		gt.V(t, resp[0].AccountType).Equal("Organization")
		gt.True(t, resp[0].SuspendedAt == nil)
		gt.True(t, resp[1].SuspendedAt != nil)
	})

	t.Run("installation repos", func(t *testing.T) {
		rec := serve(t, "/status/installations/1/repos")
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			InstallationID int64    `json:"installation_id"`
			Repositories   []string `json:"repositories"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp.InstallationID).Equal(int64(1))
		gt.V(t, resp.Repositories).Equal([]string{"octo/repo1", "octo/repo2"})
	})

	t.Run("installation repos with invalid id", func(t *testing.T) {
		rec := serve(t, "/status/installations/abc/repos")
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("coverage of covered repository", func(t *testing.T) {
		rec := serve(t, "/status/coverage/Octo/Repo1")
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Repo           string `json:"repo"`
			InstallationID *int64 `json:"installation_id"`
			Mode           string `json:"mode"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp.Repo).Equal("octo/repo1")
		gt.True(t, resp.InstallationID != nil)
		gt.V(t, *resp.InstallationID).Equal(int64(1))
		gt.V(t, resp.Mode).Equal("push")
	})

	t.Run("coverage of uncovered repository", func(t *testing.T) {
		rec := serve(t, "/status/coverage/octo/other")
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			InstallationID *int64 `json:"installation_id"`
			Mode           string `json:"mode"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.True(t, resp.InstallationID == nil)
		gt.V(t, resp.Mode).Equal("poll")
	})

	t.Run("usecase failure returns 500", func(t *testing.T) {
		failing := &mock.UseCaseMock{
			ListInstallationsFunc: func(ctx context.Context) ([]*model.Installation, error) {
				return nil, errors.New("db down")
			},
		}
		rec := httptest.NewRecorder()
		server.New(failing).Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/installations", nil))
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)
	})
}

func TestSafeWrite(t *testing.T) {
	t.Run("writes response successfully", func(t *testing.T) {
		clients := infra.New()
		uc := usecase.New(clients)
		srv := server.New(uc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})
}
