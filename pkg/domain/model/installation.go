package model

import (
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

type Account struct {
	Login string
	Type  types.AccountType
}

// Installation is a GitHub App's authorization on one account.
type Installation struct {
	ID          types.GitHubAppInstallID
	Account     Account
	AppSlug     types.GitHubAppSlug
	InstalledAt time.Time
	SuspendedAt *time.Time
}

func (x *Installation) Validate() error {
	if x.ID == 0 {
		return goerr.Wrap(types.ErrValidationFailed, "installation ID is empty")
	}
	if x.Account.Login == "" {
		return goerr.Wrap(types.ErrValidationFailed, "account login is empty", goerr.V("installationID", x.ID))
	}
	if !x.Account.Type.Valid() {
		return goerr.Wrap(types.ErrValidationFailed, "invalid account type",
			goerr.V("installationID", x.ID),
			goerr.V("accountType", x.Account.Type),
		)
	}
	return nil
}

// WithDefaults returns a copy with the app slug defaulted and the
// installed time set to now when empty.
func (x *Installation) WithDefaults(now time.Time) *Installation {
	cpy := *x
	if cpy.AppSlug == "" {
		cpy.AppSlug = types.DefaultAppSlug
	}
	if cpy.InstalledAt.IsZero() {
		cpy.InstalledAt = now
	}
	if x.SuspendedAt != nil {
		ts := *x.SuspendedAt
		cpy.SuspendedAt = &ts
	}
	return &cpy
}

// Active reports whether the installation delivers events (not suspended).
func (x *Installation) Active() bool {
	return x.SuspendedAt == nil
}

// SameContent compares the fields a redelivered created event carries.
// Timestamps are excluded because they are stamped at record time.
func (x *Installation) SameContent(other *Installation) bool {
	return x.ID == other.ID &&
		x.Account == other.Account &&
		x.AppSlug == other.AppSlug
}

// InstallationRepository is a coverage edge between an installation and a repository.
type InstallationRepository struct {
	InstallationID types.GitHubAppInstallID
	RepoFullName   types.RepoFullName
	AddedAt        time.Time
}

// NormalizeRepos canonicalizes, validates and deduplicates repository names.
// The result is sorted.
func NormalizeRepos(repos []types.RepoFullName) ([]types.RepoFullName, error) {
	seen := make(map[types.RepoFullName]struct{}, len(repos))
	out := make([]types.RepoFullName, 0, len(repos))
	for _, repo := range repos {
		name := repo.Normalize()
		if err := name.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	slices.Sort(out)
	return out, nil
}

// SameRepos reports whether two normalized repository sets are equal.
func SameRepos(a, b []types.RepoFullName) bool {
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
