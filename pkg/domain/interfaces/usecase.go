package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

type UseCase interface {
	HandleEvent(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error)
	SyncInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]*model.ReconcileResult, error)

	ListInstallations(ctx context.Context) ([]*model.Installation, error)
	CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error)
	InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error)
	DeliveryModeOf(ctx context.Context, repo types.RepoFullName) (types.DeliveryMode, error)
}
