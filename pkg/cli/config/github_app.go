package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/ghapp"
	"github.com/urfave/cli/v3"
)

type GitHubApp struct {
	id         types.GitHubAppID
	secret     types.GitHubAppSecret     `masq:"secret"`
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	baseURL    string
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("OCTORELAY_GITHUB_APP_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("OCTORELAY_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-app-secret",
			Usage:       "GitHub App Webhook Secret",
			Category:    "GitHub App",
			Destination: (*string)(&x.secret),
			Sources:     cli.EnvVars("OCTORELAY_GITHUB_APP_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL (GitHub Enterprise Server)",
			Category:    "GitHub App",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("OCTORELAY_GITHUB_API_URL"),
		},
	}
}

// Enabled reports whether API access is configured. The webhook secret alone
// is enough to receive events.
func (x GitHubApp) Enabled() bool {
	return x.id != 0 && x.privateKey != ""
}

func (x GitHubApp) New() (*ghapp.Client, error) {
	if !x.Enabled() {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App ID and private key are required")
	}

	var options []ghapp.Option
	if x.baseURL != "" {
		options = append(options, ghapp.WithBaseURL(x.baseURL))
	}
	return ghapp.New(x.id, x.privateKey, options...)
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int("Secret.len", len(x.secret)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.String("baseURL", x.baseURL),
	)
}

func (x GitHubApp) Secret() types.GitHubAppSecret {
	return x.secret
}
