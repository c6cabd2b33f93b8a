package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/octorelay/pkg/cli/config"
	"github.com/secmon-lab/octorelay/pkg/controller/server"
	"github.com/secmon-lab/octorelay/pkg/usecase"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr                string
		dispatchConcurrency int64

		githubApp config.GitHubApp
		bigQuery  config.BigQuery
		sentry    config.Sentry
		storage   storageConfig
		chat      chatConfig
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("OCTORELAY_ADDR"),
			Destination: &addr,
		},
		&cli.Int64Flag{
			Name:        "dispatch-concurrency",
			Usage:       "Max number of notifications sent in parallel per event",
			Value:       4,
			Sources:     cli.EnvVars("OCTORELAY_DISPATCH_CONCURRENCY"),
			Destination: &dispatchConcurrency,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode, receives GitHub App webhooks",
		Flags: slice.Flatten(
			serveFlags,
			githubApp.Flags(),
			storage.Flags(),
			chat.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("DispatchConcurrency", dispatchConcurrency),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Storage", &storage),
				slog.Any("Chat", &chat),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if githubApp.Secret() == "" {
				logging.Default().Warn("GitHub App webhook secret is empty, signatures are not verified")
			}

			clients, closeClients, err := buildClients(ctx, &storage, &chat, &githubApp, &bigQuery)
			if err != nil {
				return err
			}
			defer closeClients()

			uc := usecase.New(clients, usecase.WithDispatchConcurrency(int(dispatchConcurrency)))
			s := server.New(uc, server.WithGitHubSecret(githubApp.Secret()))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
