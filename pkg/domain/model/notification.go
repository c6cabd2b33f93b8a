package model

import (
	"fmt"

	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

// Notification announces a delivery mode change of one repository to one channel.
type Notification struct {
	ChannelID  types.ChannelID
	Repo       types.RepoFullName
	Transition types.Transition
	Reason     EventKind
}

// Message is what the dispatcher hands to the sender.
type Message struct {
	ChannelID types.ChannelID
	Text      string
}

func (x Notification) Message() Message {
	return Message{
		ChannelID: x.ChannelID,
		Text:      notificationText(x.Reason, x.Repo),
	}
}

func notificationText(reason EventKind, repo types.RepoFullName) string {
	switch reason {
	case EventInstallationCreated:
		return fmt.Sprintf("✅ GitHub App installed for %s! Switching to real-time webhook delivery.", repo)
	case EventRepositoriesAdded:
		return fmt.Sprintf("✅ GitHub App enabled for %s! Switching to real-time webhook delivery.", repo)
	case EventInstallationUnsuspended:
		return fmt.Sprintf("✅ GitHub App reactivated for %s! Switching to real-time webhook delivery.", repo)
	case EventInstallationDeleted:
		return fmt.Sprintf("⚠️ GitHub App uninstalled for %s. Falling back to polling mode.", repo)
	case EventRepositoriesRemoved:
		return fmt.Sprintf("⚠️ GitHub App disabled for %s. Falling back to polling mode.", repo)
	case EventInstallationSuspended:
		return fmt.Sprintf("⚠️ GitHub App suspended for %s. Falling back to polling mode.", repo)
	default:
		return fmt.Sprintf("GitHub App delivery mode changed for %s.", repo)
	}
}

// DeliveryFailure records a send that failed. Err wraps types.ErrDeliveryFailed.
type DeliveryFailure struct {
	ChannelID types.ChannelID
	Err       error
}

// LookupFailure records a repository whose subscribers could not be read
// after the registry change was committed.
type LookupFailure struct {
	Repo types.RepoFullName
	Err  error
}

// ReconcileResult summarizes one handled lifecycle event.
type ReconcileResult struct {
	Kind           EventKind
	InstallationID types.GitHubAppInstallID
	// Delta is the set of repositories whose registry state actually changed.
	Delta            []types.RepoFullName
	Transition       types.Transition
	Notifications    []Notification
	DeliveryFailures []DeliveryFailure
	LookupFailures   []LookupFailure
	// NoOp is set when a benign condition (duplicate, unknown installation) was absorbed.
	NoOp bool
}

func (x *ReconcileResult) Delivered() int {
	return len(x.Notifications) - len(x.DeliveryFailures)
}

// Partial reports whether any notification could not be delivered or computed.
func (x *ReconcileResult) Partial() bool {
	return len(x.DeliveryFailures) > 0 || len(x.LookupFailures) > 0
}
