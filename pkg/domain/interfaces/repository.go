package interfaces

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

//go:generate moq -out ../mock/repository.go -pkg mock . InstallationRegistry SubscriptionRepository

// InstallationRegistry is the durable record of installations and their
// repository coverage. Every mutation returns the repositories whose state
// it actually changed, so redelivered events yield an empty delta.
type InstallationRegistry interface {
	CreateInstallation(ctx context.Context, inst *model.Installation, repos []types.RepoFullName) ([]types.RepoFullName, error)
	DeleteInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error)
	AddRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error)
	RemoveRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error)
	// SetSuspended sets (at != nil) or clears (at == nil) the suspension. It
	// returns the coverage only when the active state changed.
	SetSuspended(ctx context.Context, id types.GitHubAppInstallID, at *time.Time) ([]types.RepoFullName, error)

	GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error)
	ListInstallations(ctx context.Context) ([]*model.Installation, error)
	CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error)
	InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error)
}

// SubscriptionRepository is the read side of channel subscriptions. Writes
// belong to the slash-command collaborator.
type SubscriptionRepository interface {
	SubscribersOf(ctx context.Context, repo types.RepoFullName) ([]types.ChannelID, error)
}
