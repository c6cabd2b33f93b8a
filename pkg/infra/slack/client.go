package slack

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// Client posts messages with chat.postMessage.
type Client struct {
	api *slack.Client
}

var _ interfaces.MessageSender = (*Client)(nil)

type config struct {
	apiURL string
}

type Option func(*config)

// WithAPIURL overrides the Slack Web API endpoint. The URL must end with a slash.
func WithAPIURL(url string) Option {
	return func(cfg *config) {
		cfg.apiURL = url
	}
}

func New(token types.SlackToken, options ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "slack token is empty")
	}

	var cfg config
	for _, opt := range options {
		opt(&cfg)
	}

	var slackOptions []slack.Option
	if cfg.apiURL != "" {
		slackOptions = append(slackOptions, slack.OptionAPIURL(cfg.apiURL))
	}

	return &Client{
		api: slack.New(string(token), slackOptions...),
	}, nil
}

func (x *Client) SendMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	channel, ts, err := x.api.PostMessageContext(ctx, string(channelID),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post slack message", goerr.V("channelID", channelID))
	}

	logging.From(ctx).Debug("posted slack message",
		slog.String("channel", channel),
		slog.String("ts", ts),
	)
	return nil
}
