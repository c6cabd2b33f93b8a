package config

import (
	"log/slog"

	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	token  types.SlackToken `masq:"secret"`
	apiURL string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token (xoxb-...)",
			Category:    "Chat",
			Sources:     cli.EnvVars("OCTORELAY_SLACK_TOKEN"),
			Destination: (*string)(&x.token),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API URL",
			Category:    "Chat",
			Sources:     cli.EnvVars("OCTORELAY_SLACK_API_URL"),
			Destination: &x.apiURL,
		},
	}
}

func (x *Slack) Enabled() bool {
	return x.token != ""
}

func (x *Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.String("apiURL", x.apiURL),
	)
}

func (x *Slack) New() (*slack.Client, error) {
	var options []slack.Option
	if x.apiURL != "" {
		options = append(options, slack.WithAPIURL(x.apiURL))
	}
	return slack.New(x.token, options...)
}
