package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

// SyncInstallation reads the installation from the GitHub API and replays
// the difference against the registry as lifecycle events. It recovers
// webhook deliveries that were lost or rejected.
func (x *UseCase) SyncInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]*model.ReconcileResult, error) {
	gh := x.clients.GitHubApp()
	if gh == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App is not configured")
	}
	registry := x.clients.InstallationRegistry()
	if registry == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installation registry is not configured")
	}

	events, err := x.syncEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("syncing installation", "installationID", id, "events", len(events))

	var results []*model.ReconcileResult
	for _, ev := range events {
		result, err := x.HandleEvent(ctx, ev)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (x *UseCase) syncEvents(ctx context.Context, id types.GitHubAppInstallID) ([]model.LifecycleEvent, error) {
	gh := x.clients.GitHubApp()
	registry := x.clients.InstallationRegistry()

	local, err := registry.GetInstallation(ctx, id)
	if err != nil && !errors.Is(err, types.ErrUnknownInstallation) {
		return nil, err
	}

	remote, err := gh.GetInstallation(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrUnknownInstallation) {
			if local == nil {
				return nil, nil
			}
			// uninstalled while the deleted webhook was lost
			return []model.LifecycleEvent{
				model.InstallationDeletedEvent{Installation: *local},
			}, nil
		}
		return nil, err
	}

	remoteRepos, err := gh.ListInstallationRepos(ctx, id)
	if err != nil {
		return nil, err
	}
	remoteRepos, err = model.NormalizeRepos(remoteRepos)
	if err != nil {
		return nil, err
	}

	if local == nil {
		return []model.LifecycleEvent{
			model.InstallationCreatedEvent{Installation: *remote, Repositories: remoteRepos},
		}, nil
	}

	localRepos, err := registry.InstallationRepos(ctx, id)
	if err != nil {
		return nil, err
	}

	toAdd := diffRepos(remoteRepos, localRepos)
	toRemove := diffRepos(localRepos, remoteRepos)

	var events []model.LifecycleEvent
	// suspend first so coverage edits under suspension notify nobody
	if local.Active() && !remote.Active() {
		events = append(events, model.InstallationSuspendedEvent{Installation: *remote})
	}
	if len(toAdd) > 0 {
		events = append(events, model.RepositoriesAddedEvent{Installation: *remote, Repositories: toAdd})
	}
	if len(toRemove) > 0 {
		events = append(events, model.RepositoriesRemovedEvent{Installation: *remote, Repositories: toRemove})
	}
	// unsuspend last so the reactivation notice covers the final coverage
	if !local.Active() && remote.Active() {
		events = append(events, model.InstallationUnsuspendedEvent{Installation: *remote})
	}

	return events, nil
}

// diffRepos returns the repositories in a that are not in b.
func diffRepos(a, b []types.RepoFullName) []types.RepoFullName {
	var out []types.RepoFullName
	for _, repo := range a {
		if !slices.Contains(b, repo) {
			out = append(out, repo)
		}
	}
	return out
}
