package discord

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

// Client posts messages to Discord channels as a bot.
type Client struct {
	session *discordgo.Session
}

var _ interfaces.MessageSender = (*Client)(nil)

type config struct {
	httpClient *http.Client
}

type Option func(*config)

func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

func New(token types.DiscordToken, options ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "discord token is empty")
	}

	var cfg config
	for _, opt := range options {
		opt(&cfg)
	}

	session, err := discordgo.New("Bot " + string(token))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord session")
	}
	if cfg.httpClient != nil {
		session.Client = cfg.httpClient
	}
	// Rate limits are reported as delivery failures instead of blocking the dispatcher.
	session.ShouldRetryOnRateLimit = false

	return &Client{session: session}, nil
}

func (x *Client) SendMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	msg, err := x.session.ChannelMessageSend(string(channelID), text, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(err, "failed to send discord message", goerr.V("channelID", channelID))
	}

	logging.From(ctx).Debug("sent discord message",
		slog.String("channel", msg.ChannelID),
		slog.String("message_id", msg.ID),
	)
	return nil
}
