package config

import (
	"log/slog"

	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/discord"
	"github.com/urfave/cli/v3"
)

type Discord struct {
	token types.DiscordToken `masq:"secret"`
}

func (x *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-token",
			Usage:       "Discord bot token",
			Category:    "Chat",
			Sources:     cli.EnvVars("OCTORELAY_DISCORD_TOKEN"),
			Destination: (*string)(&x.token),
		},
	}
}

func (x *Discord) Enabled() bool {
	return x.token != ""
}

func (x *Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
	)
}

func (x *Discord) New() (*discord.Client, error) {
	return discord.New(x.token)
}
