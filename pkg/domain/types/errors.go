package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption     = goerr.New("invalid option")
	ErrValidationFailed  = goerr.New("validation failed")
	ErrInvalidGitHubData = goerr.New("invalid GitHub data")

	// Benign: the installation is already recorded (redelivered created event).
	ErrDuplicateInstallation = goerr.New("duplicate installation")
	// Benign: the installation is not recorded, treated as already absent.
	ErrUnknownInstallation = goerr.New("unknown installation")
	// Fatal to the operation: a repository would be covered by two installations.
	ErrDataConsistencyViolation = goerr.New("data consistency violation")
	// Registry write failed mid-event; nothing was notified.
	ErrReconciliationFailed = goerr.New("reconciliation failed")
	// A single channel send failed; never propagated beyond the dispatcher.
	ErrDeliveryFailed = goerr.New("delivery failed")
)
