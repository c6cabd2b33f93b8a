package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/octorelay/pkg/cli/config"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra"
	"github.com/secmon-lab/octorelay/pkg/repository/memory"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"github.com/secmon-lab/octorelay/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// storage is the registry and the subscription side of one backend.
type storage interface {
	interfaces.InstallationRegistry
	interfaces.SubscriptionRepository
}

type storageConfig struct {
	database  config.Database
	firestore config.Firestore
}

func (x *storageConfig) Flags() []cli.Flag {
	return slice.Flatten(x.database.Flags(), x.firestore.Flags())
}

func (x *storageConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Database", &x.database),
		slog.Any("Firestore", &x.firestore),
	)
}

// New opens the configured backend. Without any backend the state is kept
// in process memory and lost at exit.
func (x *storageConfig) New(ctx context.Context) (storage, func(), error) {
	switch {
	case x.database.Enabled() && x.firestore.Enabled():
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "database and firestore are exclusive")

	case x.database.Enabled():
		repo, err := x.database.NewRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		return repo, closer(repo), nil

	case x.firestore.Enabled():
		repo, err := x.firestore.NewRepository(ctx)
		if err != nil {
			return nil, nil, err
		}
		return repo, closer(repo), nil

	default:
		logging.From(ctx).Warn("no storage is configured, using in-memory storage")
		return memory.New(), func() {}, nil
	}
}

func closer(c io.Closer) func() {
	return func() { safe.Close(c) }
}

type chatConfig struct {
	slack   config.Slack
	discord config.Discord
}

func (x *chatConfig) Flags() []cli.Flag {
	return slice.Flatten(x.slack.Flags(), x.discord.Flags())
}

func (x *chatConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Slack", &x.slack),
		slog.Any("Discord", &x.discord),
	)
}

// New returns nil when no chat platform is configured. Every notification
// is then reported as a delivery failure.
func (x *chatConfig) New(ctx context.Context) (interfaces.MessageSender, error) {
	switch {
	case x.slack.Enabled() && x.discord.Enabled():
		return nil, goerr.Wrap(types.ErrInvalidOption, "slack and discord are exclusive")
	case x.slack.Enabled():
		return x.slack.New()
	case x.discord.Enabled():
		return x.discord.New()
	default:
		logging.From(ctx).Warn("no chat platform is configured, notifications will not be delivered")
		return nil, nil
	}
}

// buildClients wires the configured infrastructure. The returned function
// releases the storage.
func buildClients(ctx context.Context, st *storageConfig, chat *chatConfig, githubApp *config.GitHubApp, bigQuery *config.BigQuery) (*infra.Clients, func(), error) {
	repo, closeStorage, err := st.New(ctx)
	if err != nil {
		return nil, nil, err
	}

	options := []infra.Option{
		infra.WithInstallationRegistry(repo),
		infra.WithSubscriptionRepository(repo),
	}

	sender, err := chat.New(ctx)
	if err != nil {
		closeStorage()
		return nil, nil, err
	}
	if sender != nil {
		options = append(options, infra.WithMessageSender(sender))
	}

	if githubApp.Enabled() {
		ghApp, err := githubApp.New()
		if err != nil {
			closeStorage()
			return nil, nil, err
		}
		options = append(options, infra.WithGitHubApp(ghApp))
	}

	auditLog, err := bigQuery.NewAuditLog(ctx)
	if err != nil {
		closeStorage()
		return nil, nil, err
	}
	if auditLog != nil {
		options = append(options, infra.WithAuditLog(auditLog))
	}

	return infra.New(options...), closeStorage, nil
}
