package ghapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

type Client struct {
	appID   types.GitHubAppID
	pem     types.GitHubAppPrivateKey
	baseURL string
}

var _ interfaces.GitHubApp = (*Client)(nil)

type Option func(*Client)

// WithBaseURL sets the REST API endpoint, e.g. for GitHub Enterprise Server.
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID: appID,
		pem:   pem,
	}
	for _, opt := range options {
		opt(client)
	}

	if client.baseURL != "" {
		if _, err := url.Parse(client.baseURL + "/"); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid base URL", goerr.V("baseURL", client.baseURL))
		}
	}

	return client, nil
}

func (x *Client) newGitHubClient(httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	if x.baseURL != "" {
		// validated in New
		u, _ := url.Parse(x.baseURL + "/")
		client.BaseURL = u
	}
	return client
}

func (x *Client) buildGithubClient(installID types.GitHubAppInstallID) (*github.Client, error) {
	httpClient, err := x.buildGithubHTTPClient(installID)
	if err != nil {
		return nil, err
	}
	return x.newGitHubClient(httpClient), nil
}

func (x *Client) buildGithubHTTPClient(installID types.GitHubAppInstallID) (*http.Client, error) {
	tr := http.DefaultTransport
	itr, err := ghinstallation.New(tr, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "Failed to create github client")
	}
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
	}

	client := &http.Client{Transport: itr}
	return client, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	tr := http.DefaultTransport
	itr, err := ghinstallation.NewAppsTransport(tr, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create app transport")
	}
	if x.baseURL != "" {
		itr.BaseURL = x.baseURL
	}
	return x.newGitHubClient(&http.Client{Transport: itr}), nil
}

// HTTPClient returns a client authenticated as the installation.
func (x *Client) HTTPClient(installID types.GitHubAppInstallID) (*http.Client, error) {
	return x.buildGithubHTTPClient(installID)
}

func (x *Client) GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return nil, err
	}

	installation, _, err := client.Apps.GetInstallation(ctx, int64(id))
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found on GitHub",
				goerr.V("installationID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get installation", goerr.V("installationID", id))
	}

	logging.From(ctx).Debug("Got installation",
		slog.Any("installationID", id),
		slog.String("account", installation.GetAccount().GetLogin()),
	)

	return ToInstallation(installation), nil
}

func (x *Client) ListInstallationRepos(ctx context.Context, installID types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	client, err := x.buildGithubClient(installID)
	if err != nil {
		return nil, err
	}

	var allRepos []types.RepoFullName
	opts := &github.ListOptions{PerPage: 100}

	for {
		result, resp, err := client.Apps.ListRepos(ctx, opts)
		if err != nil {
			if isNotFound(err) {
				return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found on GitHub",
					goerr.V("installationID", installID),
				)
			}
			return nil, goerr.Wrap(err, "failed to list installation repos", goerr.V("installationID", installID))
		}

		for _, repo := range result.Repositories {
			allRepos = append(allRepos, types.RepoFullName(repo.GetFullName()).Normalize())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.From(ctx).Info("Listed installation repos",
		slog.Int("count", len(allRepos)),
		slog.Any("installID", installID),
	)

	return allRepos, nil
}

func (x *Client) FindInstallationID(ctx context.Context, owner string) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	// Try organization installation first
	installation, resp, orgErr := client.Apps.FindOrganizationInstallation(ctx, owner)
	if orgErr == nil && installation != nil {
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	// If not found as org (404), try user installation
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		installation, _, userErr := client.Apps.FindUserInstallation(ctx, owner)
		if userErr != nil {
			if isNotFound(userErr) {
				return 0, goerr.Wrap(types.ErrUnknownInstallation, "installation not found for owner",
					goerr.V("owner", owner),
				)
			}
			return 0, goerr.Wrap(userErr, "failed to find user installation for owner",
				goerr.V("owner", owner),
			)
		}

		if installation != nil {
			logging.From(ctx).Info("Found user installation",
				slog.String("owner", owner),
				slog.Int64("installID", installation.GetID()),
			)
			return types.GitHubAppInstallID(installation.GetID()), nil
		}
	}

	// If org lookup failed with non-404 error, propagate it
	if orgErr != nil {
		return 0, goerr.Wrap(orgErr, "failed to find organization installation for owner",
			goerr.V("owner", owner),
		)
	}

	return 0, goerr.Wrap(types.ErrUnknownInstallation, "installation not found for owner",
		goerr.V("owner", owner),
	)
}

// ToInstallation converts an installation object of the GitHub API or a
// webhook payload.
func ToInstallation(src *github.Installation) *model.Installation {
	inst := &model.Installation{
		ID: types.GitHubAppInstallID(src.GetID()),
		Account: model.Account{
			Login: src.GetAccount().GetLogin(),
			Type:  types.AccountType(src.GetAccount().GetType()),
		},
		AppSlug: types.GitHubAppSlug(src.GetAppSlug()),
	}
	if src.CreatedAt != nil {
		inst.InstalledAt = src.CreatedAt.Time
	}
	if src.SuspendedAt != nil {
		ts := src.SuspendedAt.Time
		inst.SuspendedAt = &ts
	}
	return inst
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusNotFound
	}
	return false
}
