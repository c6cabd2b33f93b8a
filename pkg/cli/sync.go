package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/octorelay/pkg/cli/config"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/usecase"
	"github.com/secmon-lab/octorelay/pkg/utils/errutil"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func syncCommand() *cli.Command {
	var (
		installationID int64
		owner          string
		all            bool

		githubApp config.GitHubApp
		bigQuery  config.BigQuery
		sentry    config.Sentry
		storage   storageConfig
		chat      chatConfig
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Replay the installation state of GitHub into the registry to recover lost webhooks",
		Flags: slice.Flatten([]cli.Flag{
			&cli.Int64Flag{
				Name:        "installation-id",
				Aliases:     []string{"i"},
				Usage:       "GitHub App installation ID to sync",
				Sources:     cli.EnvVars("OCTORELAY_SYNC_INSTALLATION_ID"),
				Destination: &installationID,
			},
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Organization or user whose installation is synced",
				Sources:     cli.EnvVars("OCTORELAY_SYNC_OWNER"),
				Destination: &owner,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "Sync every installation recorded in the registry",
				Destination: &all,
			},
		}, githubApp.Flags(), storage.Flags(), chat.Flags(), bigQuery.Flags(), sentry.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if !githubApp.Enabled() {
				return goerr.Wrap(types.ErrInvalidOption, "sync requires GitHub App ID and private key")
			}

			clients, closeClients, err := buildClients(ctx, &storage, &chat, &githubApp, &bigQuery)
			if err != nil {
				return err
			}
			defer closeClients()

			uc := usecase.New(clients)

			var targets []types.GitHubAppInstallID
			switch {
			case all:
				installations, err := uc.ListInstallations(ctx)
				if err != nil {
					return err
				}
				for _, inst := range installations {
					targets = append(targets, inst.ID)
				}

			case installationID != 0:
				targets = append(targets, types.GitHubAppInstallID(installationID))

			case owner != "":
				id, err := clients.GitHubApp().FindInstallationID(ctx, owner)
				if err != nil {
					return err
				}
				targets = append(targets, id)

			default:
				return goerr.Wrap(types.ErrInvalidOption, "one of --installation-id, --owner or --all is required")
			}

			var failed int
			for _, id := range targets {
				ctx := logging.With(ctx, logging.From(ctx).With(slog.Int64("installationID", int64(id))))

				results, err := uc.SyncInstallation(ctx, id)
				if err != nil {
					errutil.HandleError(ctx, "failed to sync installation", err)
					failed++
					continue
				}
				logSyncResults(ctx, results)
			}

			if failed > 0 {
				return goerr.New("failed to sync installations", goerr.V("failed", failed), goerr.V("total", len(targets)))
			}
			return nil
		},
	}
}

func logSyncResults(ctx context.Context, results []*model.ReconcileResult) {
	if len(results) == 0 {
		logging.From(ctx).Info("installation is already in sync")
		return
	}

	for _, result := range results {
		logging.From(ctx).Info("replayed lifecycle event",
			slog.String("kind", string(result.Kind)),
			slog.Any("delta", result.Delta),
			slog.Int("notified", result.Delivered()),
			slog.Int("deliveryFailures", len(result.DeliveryFailures)),
			slog.Int("lookupFailures", len(result.LookupFailures)),
		)
	}
}
