package firestore

import (
	"context"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/repository"
)

const (
	collectionInstallation = "installation"
	collectionCoverage     = "coverage"
	collectionSubscription = "subscription"
	collectionChannel      = "channel"
)

// Repository stores installations, coverage and subscriptions in Firestore.
// Coverage documents are keyed by repository, so one repository can only be
// covered by one installation.
type Repository struct {
	client *firestore.Client
}

var (
	_ interfaces.InstallationRegistry   = (*Repository)(nil)
	_ interfaces.SubscriptionRepository = (*Repository)(nil)
)

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID, databaseID string) (*Repository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Repository{
		client: client,
	}, nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}

// ToFirestoreID converts owner and repo to a Firestore-safe document ID
// Uses colon (:) as separator since GitHub owner names cannot contain colons
func ToFirestoreID(owner, repo string) (string, error) {
	if owner == "" || repo == "" {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo is empty",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	if strings.Contains(owner, ":") || strings.Contains(repo, ":") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "owner or repo contains invalid character ':'",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	return owner + ":" + repo, nil
}

func repoDocID(name types.RepoFullName) (string, error) {
	owner, repo := name.Split()
	return ToFirestoreID(owner, repo)
}

func (r *Repository) installationRef(id types.GitHubAppInstallID) *firestore.DocumentRef {
	return r.client.Collection(collectionInstallation).Doc(strconv.FormatInt(int64(id), 10))
}

func (r *Repository) coverageRef(name types.RepoFullName) (*firestore.DocumentRef, error) {
	docID, err := repoDocID(name)
	if err != nil {
		return nil, err
	}
	return r.client.Collection(collectionCoverage).Doc(docID), nil
}
