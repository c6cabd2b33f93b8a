package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/cli/config"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"github.com/secmon-lab/octorelay/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	var database config.Database

	return &cli.Command{
		Name:  "migrate",
		Usage: "Create PostgreSQL tables and indexes",
		Flags: database.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !database.Enabled() {
				return goerr.Wrap(types.ErrInvalidOption, "database URL is required for migration")
			}

			repo, err := database.NewRepository(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(repo)

			if err := repo.Migrate(ctx); err != nil {
				return err
			}

			logging.From(ctx).Info("migration completed", slog.Any("Database", &database))
			return nil
		},
	}
}
