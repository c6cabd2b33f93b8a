package firestore

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"google.golang.org/api/iterator"
)

type subscriptionDoc struct {
	ChannelID    string    `firestore:"channel_id"`
	RepoFullName string    `firestore:"repo_full_name"`
	CreatedAt    time.Time `firestore:"created_at"`
}

func (r *Repository) channelCollection(repo types.RepoFullName) (*firestore.CollectionRef, error) {
	docID, err := repoDocID(repo.Normalize())
	if err != nil {
		return nil, err
	}
	return r.client.Collection(collectionSubscription).Doc(docID).Collection(collectionChannel), nil
}

func (r *Repository) SubscribersOf(ctx context.Context, repo types.RepoFullName) ([]types.ChannelID, error) {
	col, err := r.channelCollection(repo)
	if err != nil {
		return nil, err
	}

	iter := col.Documents(ctx)
	defer iter.Stop()

	var channels []types.ChannelID
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate subscriptions", goerr.V("repo", repo))
		}

		var doc subscriptionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode subscription", goerr.V("docID", snap.Ref.ID))
		}
		channels = append(channels, types.ChannelID(doc.ChannelID))
	}

	slices.Sort(channels)
	return slices.Compact(channels), nil
}

// Subscribe registers a channel's interest in a repository. The channel ID
// is the document ID, so subscribing twice keeps one document.
func (r *Repository) Subscribe(ctx context.Context, channelID types.ChannelID, repo types.RepoFullName) error {
	col, err := r.channelCollection(repo)
	if err != nil {
		return err
	}

	doc := &subscriptionDoc{
		ChannelID:    string(channelID),
		RepoFullName: repo.Normalize().String(),
		CreatedAt:    logging.CtxTime(ctx),
	}
	if _, err := col.Doc(string(channelID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to subscribe",
			goerr.V("channelID", channelID),
			goerr.V("repo", repo),
		)
	}
	return nil
}
