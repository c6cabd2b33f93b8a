package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/ghapp"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

// validateGitHubAppEvent verifies the signature and parses the webhook payload.
func validateGitHubAppEvent(r *http.Request, key types.GitHubAppSecret) (any, error) {
	ctx := r.Context()
	payload, err := github.ValidatePayload(r, []byte(key))
	if err != nil {
		return nil, goerr.Wrap(err, "validating payload")
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		return nil, goerr.Wrap(err, "parsing webhook")
	}

	logging.From(ctx).Info("Received GitHub App event",
		slog.String("type", github.WebHookType(r)),
		slog.String("delivery", github.DeliveryID(r)),
	)

	return event, nil
}

func toRepoNames(repos []*github.Repository) []types.RepoFullName {
	names := make([]types.RepoFullName, 0, len(repos))
	for _, repo := range repos {
		names = append(names, types.RepoFullName(repo.GetFullName()))
	}
	return names
}

// githubEventToLifecycleEvent converts installation webhooks. It returns nil
// for every other event and action.
func githubEventToLifecycleEvent(ctx context.Context, event any) model.LifecycleEvent {
	switch ev := event.(type) {
	case *github.InstallationEvent:
		if ev.Installation == nil {
			logging.From(ctx).Warn("ignore installation event without installation")
			return nil
		}
		inst := *ghapp.ToInstallation(ev.Installation)

		switch ev.GetAction() {
		case "created":
			return model.InstallationCreatedEvent{
				Installation: inst,
				Repositories: toRepoNames(ev.Repositories),
			}
		case "deleted":
			return model.InstallationDeletedEvent{Installation: inst}
		case "suspend":
			if inst.SuspendedAt == nil {
				ts := logging.CtxTime(ctx)
				inst.SuspendedAt = &ts
			}
			return model.InstallationSuspendedEvent{Installation: inst}
		case "unsuspend":
			inst.SuspendedAt = nil
			return model.InstallationUnsuspendedEvent{Installation: inst}
		default:
			logging.From(ctx).Debug("ignore installation event", slog.String("action", ev.GetAction()))
			return nil
		}

	case *github.InstallationRepositoriesEvent:
		if ev.Installation == nil {
			logging.From(ctx).Warn("ignore installation_repositories event without installation")
			return nil
		}
		inst := *ghapp.ToInstallation(ev.Installation)

		switch ev.GetAction() {
		case "added":
			return model.RepositoriesAddedEvent{
				Installation: inst,
				Repositories: toRepoNames(ev.RepositoriesAdded),
			}
		case "removed":
			return model.RepositoriesRemovedEvent{
				Installation: inst,
				Repositories: toRepoNames(ev.RepositoriesRemoved),
			}
		default:
			logging.From(ctx).Debug("ignore installation_repositories event", slog.String("action", ev.GetAction()))
			return nil
		}

	default:
		logging.From(ctx).Debug("unsupported event", slog.String("event", fmt.Sprintf("%T", event)))
		return nil
	}
}
