package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

func (x *UseCase) ListInstallations(ctx context.Context) ([]*model.Installation, error) {
	if x.clients.InstallationRegistry() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installation registry is not configured")
	}
	return x.clients.InstallationRegistry().ListInstallations(ctx)
}

func (x *UseCase) CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error) {
	if x.clients.InstallationRegistry() == nil {
		return mo.None[types.GitHubAppInstallID](), goerr.Wrap(types.ErrInvalidOption, "installation registry is not configured")
	}
	return x.clients.InstallationRegistry().CoverageOf(ctx, repo.Normalize())
}

func (x *UseCase) InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	if x.clients.InstallationRegistry() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installation registry is not configured")
	}
	return x.clients.InstallationRegistry().InstallationRepos(ctx, id)
}

// DeliveryModeOf derives the mode of a repository: push iff it is covered
// by an installation that is not suspended.
func (x *UseCase) DeliveryModeOf(ctx context.Context, repo types.RepoFullName) (types.DeliveryMode, error) {
	covered, err := x.CoverageOf(ctx, repo)
	if err != nil {
		return "", err
	}

	id, ok := covered.Get()
	if !ok {
		return types.DeliveryModePoll, nil
	}

	inst, err := x.clients.InstallationRegistry().GetInstallation(ctx, id)
	if err != nil {
		return "", err
	}
	if !inst.Active() {
		return types.DeliveryModePoll, nil
	}
	return types.DeliveryModePush, nil
}
