package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra"
	"github.com/secmon-lab/octorelay/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	var (
		repos   []string
		storage storageConfig
	)

	return &cli.Command{
		Name:  "status",
		Usage: "Show installations and the delivery mode of repositories",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringSliceFlag{
				Name:        "repo",
				Aliases:     []string{"r"},
				Usage:       "Repository (owner/name) to show the delivery mode of",
				Destination: &repos,
			},
		}, storage.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, closeStorage, err := storage.New(ctx)
			if err != nil {
				return err
			}
			defer closeStorage()

			uc := usecase.New(infra.New(
				infra.WithInstallationRegistry(repo),
				infra.WithSubscriptionRepository(repo),
			))

			w := c.Root().Writer
			if len(repos) > 0 {
				return printCoverage(ctx, w, uc, repos)
			}
			return printInstallations(ctx, w, uc)
		},
	}
}

func printInstallations(ctx context.Context, w io.Writer, uc *usecase.UseCase) error {
	installations, err := uc.ListInstallations(ctx)
	if err != nil {
		return err
	}
	if len(installations) == 0 {
		fmt.Fprintln(w, "no installations")
		return nil
	}

	for _, inst := range installations {
		state := color.GreenString("active")
		if !inst.Active() {
			state = color.YellowString("suspended since %s", inst.SuspendedAt.Format("2006-01-02"))
		}
		fmt.Fprintf(w, "%d\t%s (%s)\t%s\n", inst.ID, inst.Account.Login, inst.Account.Type, state)

		repos, err := uc.InstallationRepos(ctx, inst.ID)
		if err != nil {
			return err
		}
		for _, repo := range repos {
			fmt.Fprintf(w, "\t%s\n", repo)
		}
	}
	return nil
}

func printCoverage(ctx context.Context, w io.Writer, uc *usecase.UseCase, repos []string) error {
	for _, name := range repos {
		repo := types.RepoFullName(name).Normalize()
		if err := repo.Validate(); err != nil {
			return err
		}

		mode, err := uc.DeliveryModeOf(ctx, repo)
		if err != nil {
			return err
		}
		covered, err := uc.CoverageOf(ctx, repo)
		if err != nil {
			return err
		}

		modeText := color.YellowString(string(mode))
		if mode == types.DeliveryModePush {
			modeText = color.GreenString(string(mode))
		}

		if id, ok := covered.Get(); ok {
			fmt.Fprintf(w, "%s\t%s\tinstallation %d\n", repo, modeText, id)
		} else {
			fmt.Fprintf(w, "%s\t%s\tnot installed\n", repo, modeText)
		}
	}
	return nil
}
