package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

type EventKind string

const (
	EventInstallationCreated     EventKind = "installation_created"
	EventInstallationDeleted     EventKind = "installation_deleted"
	EventInstallationSuspended   EventKind = "installation_suspended"
	EventInstallationUnsuspended EventKind = "installation_unsuspended"
	EventRepositoriesAdded       EventKind = "repositories_added"
	EventRepositoriesRemoved     EventKind = "repositories_removed"
)

// LifecycleEvent is a closed set of installation lifecycle events. Only the
// types in this package implement it.
type LifecycleEvent interface {
	Kind() EventKind
	InstallationID() types.GitHubAppInstallID
	Validate() error
	lifecycleEvent()
}

type InstallationCreatedEvent struct {
	Installation Installation
	Repositories []types.RepoFullName
}

type InstallationDeletedEvent struct {
	Installation Installation
}

type InstallationSuspendedEvent struct {
	Installation Installation
}

type InstallationUnsuspendedEvent struct {
	Installation Installation
}

type RepositoriesAddedEvent struct {
	Installation Installation
	Repositories []types.RepoFullName
}

type RepositoriesRemovedEvent struct {
	Installation Installation
	Repositories []types.RepoFullName
}

func (InstallationCreatedEvent) lifecycleEvent()     {}
func (InstallationDeletedEvent) lifecycleEvent()     {}
func (InstallationSuspendedEvent) lifecycleEvent()   {}
func (InstallationUnsuspendedEvent) lifecycleEvent() {}
func (RepositoriesAddedEvent) lifecycleEvent()       {}
func (RepositoriesRemovedEvent) lifecycleEvent()     {}

func (InstallationCreatedEvent) Kind() EventKind     { return EventInstallationCreated }
func (InstallationDeletedEvent) Kind() EventKind     { return EventInstallationDeleted }
func (InstallationSuspendedEvent) Kind() EventKind   { return EventInstallationSuspended }
func (InstallationUnsuspendedEvent) Kind() EventKind { return EventInstallationUnsuspended }
func (RepositoriesAddedEvent) Kind() EventKind       { return EventRepositoriesAdded }
func (RepositoriesRemovedEvent) Kind() EventKind     { return EventRepositoriesRemoved }

func (x InstallationCreatedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}
func (x InstallationDeletedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}
func (x InstallationSuspendedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}
func (x InstallationUnsuspendedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}
func (x RepositoriesAddedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}
func (x RepositoriesRemovedEvent) InstallationID() types.GitHubAppInstallID {
	return x.Installation.ID
}

func (x InstallationCreatedEvent) Validate() error {
	if err := x.Installation.Validate(); err != nil {
		return err
	}
	return validateRepos(x.Installation.ID, x.Repositories)
}

func (x InstallationDeletedEvent) Validate() error {
	return validateInstallID(x.Installation.ID)
}

func (x InstallationSuspendedEvent) Validate() error {
	if err := validateInstallID(x.Installation.ID); err != nil {
		return err
	}
	if x.Installation.SuspendedAt == nil {
		return goerr.Wrap(types.ErrValidationFailed, "suspended_at is empty", goerr.V("installationID", x.Installation.ID))
	}
	return nil
}

func (x InstallationUnsuspendedEvent) Validate() error {
	return validateInstallID(x.Installation.ID)
}

func (x RepositoriesAddedEvent) Validate() error {
	if err := validateInstallID(x.Installation.ID); err != nil {
		return err
	}
	return validateRepos(x.Installation.ID, x.Repositories)
}

func (x RepositoriesRemovedEvent) Validate() error {
	if err := validateInstallID(x.Installation.ID); err != nil {
		return err
	}
	return validateRepos(x.Installation.ID, x.Repositories)
}

func validateInstallID(id types.GitHubAppInstallID) error {
	if id == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "installation ID is empty")
	}
	return nil
}

func validateRepos(id types.GitHubAppInstallID, repos []types.RepoFullName) error {
	for _, repo := range repos {
		if err := repo.Normalize().Validate(); err != nil {
			return goerr.Wrap(err, "invalid repository in event", goerr.V("installationID", id))
		}
	}
	return nil
}
