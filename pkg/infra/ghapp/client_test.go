package ghapp_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/ghapp"
	"github.com/secmon-lab/octorelay/pkg/utils/testutil"
)

func TestNew(t *testing.T) {
	t.Run("create new GitHub App client with valid inputs", func(t *testing.T) {
		appID := types.GitHubAppID(12345)
		privateKey := types.GitHubAppPrivateKey("test-key")

		_, err := ghapp.New(appID, privateKey)
		gt.NoError(t, err)
	})

	t.Run("create with empty private key fails", func(t *testing.T) {
		appID := types.GitHubAppID(12345)
		privateKey := types.GitHubAppPrivateKey("")

		client, err := ghapp.New(appID, privateKey)
		gt.Error(t, err)
		gt.V(t, client).Equal(nil)
	})

	t.Run("create with zero app ID fails", func(t *testing.T) {
		appID := types.GitHubAppID(0)
		privateKey := types.GitHubAppPrivateKey("test-key")

		client, err := ghapp.New(appID, privateKey)
		gt.Error(t, err)
		gt.V(t, client).Equal(nil)
	})

	t.Run("HTTPClient returns error with invalid key", func(t *testing.T) {
		appID := types.GitHubAppID(12345)
		privateKey := types.GitHubAppPrivateKey("invalid-key")

		client, err := ghapp.New(appID, privateKey)
		gt.NoError(t, err)

		httpClient, err := client.HTTPClient(types.GitHubAppInstallID(67890))
		gt.Error(t, err)
		gt.V(t, httpClient).Equal(nil)
	})
}

func generatePrivateKey(t *testing.T) types.GitHubAppPrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	gt.NoError(t, err)

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return types.GitHubAppPrivateKey(pem.EncodeToMemory(block))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /app/installations/{id}/access_tokens", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"token":      "ghs_test",
			"expires_at": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /app/installations/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "123" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":           123,
			"app_slug":     "octorelay",
			"created_at":   "2024-01-02T03:04:05Z",
			"suspended_at": "2024-02-03T04:05:06Z",
			"account": map[string]any{
				"login": "octo",
				"type":  "Organization",
			},
		})
	})

	mux.HandleFunc("GET /installation/repositories", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "token ghs_test" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Bad credentials"})
			return
		}

		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, http.StatusOK, map[string]any{
				"total_count":  2,
				"repositories": []map[string]any{{"full_name": "octo/other"}},
			})
			return
		}

		w.Header().Set("Link", `<`+"http://"+r.Host+`/installation/repositories?page=2>; rel="next"`)
		writeJSON(w, http.StatusOK, map[string]any{
			"total_count":  2,
			"repositories": []map[string]any{{"full_name": "Octo/Repo"}},
		})
	})

	mux.HandleFunc("GET /orgs/{org}/installation", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
	})

	mux.HandleFunc("GET /users/{user}/installation", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("user") != "octo" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 456})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientWithServer(t *testing.T) {
	ctx := context.Background()
	srv := newGitHubServer(t)

	client, err := ghapp.New(types.GitHubAppID(1), generatePrivateKey(t), ghapp.WithBaseURL(srv.URL))
	gt.NoError(t, err)

	t.Run("GetInstallation", func(t *testing.T) {
		inst, err := client.GetInstallation(ctx, 123)
		gt.NoError(t, err)
		gt.V(t, inst.ID).Equal(types.GitHubAppInstallID(123))
		gt.V(t, inst.Account.Login).Equal("octo")
		gt.V(t, inst.Account.Type).Equal(types.AccountTypeOrganization)
		gt.V(t, inst.AppSlug).Equal(types.GitHubAppSlug("octorelay"))
		gt.True(t, inst.InstalledAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
		gt.False(t, inst.Active())
	})

	t.Run("GetInstallation not found", func(t *testing.T) {
		_, err := client.GetInstallation(ctx, 999)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrUnknownInstallation))
	})

	t.Run("ListInstallationRepos follows pages", func(t *testing.T) {
		repos, err := client.ListInstallationRepos(ctx, 123)
		gt.NoError(t, err)
		gt.V(t, repos).Equal([]types.RepoFullName{"octo/repo", "octo/other"})
	})

	t.Run("FindInstallationID falls back to user installation", func(t *testing.T) {
		id, err := client.FindInstallationID(ctx, "octo")
		gt.NoError(t, err)
		gt.V(t, id).Equal(types.GitHubAppInstallID(456))
	})

	t.Run("FindInstallationID not found", func(t *testing.T) {
		_, err := client.FindInstallationID(ctx, "nobody")
		gt.True(t, errors.Is(err, types.ErrUnknownInstallation))
	})
}

func TestListInstallationRepos_Integration(t *testing.T) {
	appIDStr := testutil.GetEnvOrSkip(t, "TEST_GITHUB_APP_ID")
	privateKey := testutil.GetEnvOrSkip(t, "TEST_GITHUB_PRIVATE_KEY")
	owner := testutil.GetEnvOrSkip(t, "TEST_GITHUB_OWNER")

	appID, err := strconv.ParseInt(appIDStr, 10, 64)
	gt.NoError(t, err)

	client, err := ghapp.New(types.GitHubAppID(appID), types.GitHubAppPrivateKey(privateKey))
	gt.NoError(t, err)

	ctx := context.Background()

	installID, err := client.FindInstallationID(ctx, owner)
	gt.NoError(t, err)
	gt.V(t, installID).NotEqual(types.GitHubAppInstallID(0))

	inst, err := client.GetInstallation(ctx, installID)
	gt.NoError(t, err)
	gt.V(t, inst.ID).Equal(installID)

	repos, err := client.ListInstallationRepos(ctx, installID)
	gt.NoError(t, err)

	t.Logf("Found %d repositories for owner: %s", len(repos), owner)
	for _, repo := range repos {
		gt.NoError(t, repo.Validate())
	}
}
