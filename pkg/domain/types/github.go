package types

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppSecret     string
	GitHubAppPrivateKey string
	GitHubAppSlug       string
)

func (x GitHubAppSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppSecret) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

// DefaultAppSlug is used when an installation payload carries no app slug.
const DefaultAppSlug GitHubAppSlug = "octorelay"

// RepoFullName is "owner/name". GitHub treats repository names
// case-insensitively, so the canonical form is lowercase.
type RepoFullName string

func NewRepoFullName(owner, name string) RepoFullName {
	return RepoFullName(strings.ToLower(owner + "/" + name))
}

func (x RepoFullName) String() string { return string(x) }

// Normalize returns the canonical (lowercase, trimmed) form.
func (x RepoFullName) Normalize() RepoFullName {
	return RepoFullName(strings.ToLower(strings.TrimSpace(string(x))))
}

func (x RepoFullName) Validate() error {
	parts := strings.Split(string(x), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return goerr.Wrap(ErrValidationFailed, "invalid repository full name", goerr.V("repo", x))
	}
	return nil
}

// Split returns owner and name. Both are empty for a malformed name.
func (x RepoFullName) Split() (string, string) {
	parts := strings.Split(string(x), "/")
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

type AccountType string

const (
	AccountTypeUser         AccountType = "User"
	AccountTypeOrganization AccountType = "Organization"
)

func (x AccountType) Valid() bool {
	return x == AccountTypeUser || x == AccountTypeOrganization
}
