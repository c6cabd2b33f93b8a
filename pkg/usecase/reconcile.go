package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/errutil"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

// HandleEvent applies one lifecycle event to the registry and notifies the
// subscribers of every repository whose delivery mode actually changed.
func (x *UseCase) HandleEvent(ctx context.Context, ev model.LifecycleEvent) (*model.ReconcileResult, error) {
	if ev == nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "lifecycle event is nil")
	}
	if err := ev.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid lifecycle event",
			goerr.V("kind", ev.Kind()),
			goerr.V("installationID", ev.InstallationID()),
		)
	}

	ctx = logging.With(ctx, logging.From(ctx).With(
		"kind", ev.Kind(),
		"installationID", ev.InstallationID(),
	))

	unlock := x.locks.lock(ev.InstallationID())
	defer unlock()

	var result *model.ReconcileResult
	var err error

	switch ev := ev.(type) {
	case model.InstallationCreatedEvent:
		result, err = x.handleInstallationCreated(ctx, ev)
	case model.InstallationDeletedEvent:
		result, err = x.handleInstallationDeleted(ctx, ev)
	case model.RepositoriesAddedEvent:
		result, err = x.handleRepositoriesAdded(ctx, ev)
	case model.RepositoriesRemovedEvent:
		result, err = x.handleRepositoriesRemoved(ctx, ev)
	case model.InstallationSuspendedEvent:
		result, err = x.handleInstallationSuspended(ctx, ev)
	case model.InstallationUnsuspendedEvent:
		result, err = x.handleInstallationUnsuspended(ctx, ev)
	default:
		return nil, goerr.Wrap(types.ErrValidationFailed, "unsupported lifecycle event",
			goerr.V("kind", ev.Kind()),
		)
	}

	x.putAudit(ctx, ev, result, err)

	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("lifecycle event handled",
		"delta", len(result.Delta),
		"notifications", len(result.Notifications),
		"delivered", result.Delivered(),
		"noop", result.NoOp,
	)
	return result, nil
}

func (x *UseCase) HandleInstallationCreated(ctx context.Context, ev model.InstallationCreatedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

func (x *UseCase) HandleInstallationDeleted(ctx context.Context, ev model.InstallationDeletedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

func (x *UseCase) HandleRepositoriesAdded(ctx context.Context, ev model.RepositoriesAddedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

func (x *UseCase) HandleRepositoriesRemoved(ctx context.Context, ev model.RepositoriesRemovedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

func (x *UseCase) HandleInstallationSuspended(ctx context.Context, ev model.InstallationSuspendedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

func (x *UseCase) HandleInstallationUnsuspended(ctx context.Context, ev model.InstallationUnsuspendedEvent) (*model.ReconcileResult, error) {
	return x.HandleEvent(ctx, ev)
}

// applyFunc mutates the registry and returns the applied delta. notify is
// false when the delta does not change any delivery mode.
type applyFunc func(ctx context.Context) (delta []types.RepoFullName, notify bool, err error)

func (x *UseCase) handleInstallationCreated(ctx context.Context, ev model.InstallationCreatedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionEnabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		inst := ev.Installation
		added, err := x.clients.InstallationRegistry().CreateInstallation(ctx, &inst, ev.Repositories)
		return added, inst.Active(), err
	})
}

func (x *UseCase) handleInstallationDeleted(ctx context.Context, ev model.InstallationDeletedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionDisabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		registry := x.clients.InstallationRegistry()
		inst, err := registry.GetInstallation(ctx, ev.Installation.ID)
		if err != nil {
			return nil, false, err
		}

		removed, err := registry.DeleteInstallation(ctx, ev.Installation.ID)
		// a suspended installation's repositories are already polled
		return removed, inst.Active(), err
	})
}

func (x *UseCase) handleRepositoriesAdded(ctx context.Context, ev model.RepositoriesAddedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionEnabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		registry := x.clients.InstallationRegistry()
		inst, err := registry.GetInstallation(ctx, ev.Installation.ID)
		if err != nil {
			return nil, false, err
		}

		added, err := registry.AddRepositories(ctx, ev.Installation.ID, ev.Repositories)
		return added, inst.Active(), err
	})
}

func (x *UseCase) handleRepositoriesRemoved(ctx context.Context, ev model.RepositoriesRemovedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionDisabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		registry := x.clients.InstallationRegistry()
		inst, err := registry.GetInstallation(ctx, ev.Installation.ID)
		if err != nil {
			return nil, false, err
		}

		removed, err := registry.RemoveRepositories(ctx, ev.Installation.ID, ev.Repositories)
		return removed, inst.Active(), err
	})
}

func (x *UseCase) handleInstallationSuspended(ctx context.Context, ev model.InstallationSuspendedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionDisabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		affected, err := x.clients.InstallationRegistry().SetSuspended(ctx, ev.Installation.ID, ev.Installation.SuspendedAt)
		return affected, true, err
	})
}

func (x *UseCase) handleInstallationUnsuspended(ctx context.Context, ev model.InstallationUnsuspendedEvent) (*model.ReconcileResult, error) {
	return x.reconcile(ctx, ev, types.TransitionEnabled, func(ctx context.Context) ([]types.RepoFullName, bool, error) {
		affected, err := x.clients.InstallationRegistry().SetSuspended(ctx, ev.Installation.ID, nil)
		return affected, true, err
	})
}

func (x *UseCase) reconcile(ctx context.Context, ev model.LifecycleEvent, transition types.Transition, apply applyFunc) (*model.ReconcileResult, error) {
	if x.clients.InstallationRegistry() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "installation registry is not configured")
	}

	result := &model.ReconcileResult{
		Kind:           ev.Kind(),
		InstallationID: ev.InstallationID(),
		Transition:     transition,
	}

	delta, notify, err := apply(ctx)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrDuplicateInstallation), errors.Is(err, types.ErrUnknownInstallation):
			logging.From(ctx).Warn("lifecycle event ignored", "reason", err.Error())
			result.NoOp = true
			return result, nil

		case errors.Is(err, types.ErrDataConsistencyViolation):
			return nil, err

		default:
			return nil, goerr.Wrap(errors.Join(types.ErrReconciliationFailed, err), "failed to apply lifecycle event",
				goerr.V("kind", ev.Kind()),
				goerr.V("installationID", ev.InstallationID()),
			)
		}
	}

	result.Delta = delta
	if !notify || len(delta) == 0 {
		return result, nil
	}

	result.Notifications, result.LookupFailures = x.buildNotifications(ctx, ev.Kind(), transition, delta)

	msgs := make([]model.Message, len(result.Notifications))
	for i, n := range result.Notifications {
		msgs[i] = n.Message()
	}
	result.DeliveryFailures = x.dispatcher.Dispatch(ctx, msgs)

	return result, nil
}

// buildNotifications creates one notification per (channel, repository). A
// subscriber lookup failure skips that repository only; the registry change
// is already committed.
func (x *UseCase) buildNotifications(ctx context.Context, reason model.EventKind, transition types.Transition, delta []types.RepoFullName) ([]model.Notification, []model.LookupFailure) {
	subscriptions := x.clients.SubscriptionRepository()
	if subscriptions == nil {
		return nil, nil
	}

	repos := slices.Clone(delta)
	slices.Sort(repos)
	repos = slices.Compact(repos)

	var notifications []model.Notification
	var failures []model.LookupFailure

	for _, repo := range repos {
		channels, err := subscriptions.SubscribersOf(ctx, repo)
		if err != nil {
			err = goerr.Wrap(err, "failed to get subscribers", goerr.V("repo", repo))
			errutil.HandleError(ctx, "subscriber lookup failed after registry change", err)
			failures = append(failures, model.LookupFailure{Repo: repo, Err: err})
			continue
		}

		seen := make(map[types.ChannelID]struct{}, len(channels))
		for _, ch := range channels {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}

			notifications = append(notifications, model.Notification{
				ChannelID:  ch,
				Repo:       repo,
				Transition: transition,
				Reason:     reason,
			})
		}
	}

	return notifications, failures
}

func (x *UseCase) putAudit(ctx context.Context, ev model.LifecycleEvent, result *model.ReconcileResult, err error) {
	auditLog := x.clients.AuditLog()
	if auditLog == nil {
		return
	}

	reqID, _ := logging.CtxRequestID(ctx)
	record := model.NewAuditRecord(logging.CtxTime(ctx), string(reqID), ev, result, err)
	if err := auditLog.Put(ctx, record); err != nil {
		logging.From(ctx).Warn("failed to put audit record", "error", err)
	}
}
