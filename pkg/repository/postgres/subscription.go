package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

func (r *Repository) SubscribersOf(ctx context.Context, repo types.RepoFullName) ([]types.ChannelID, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT channel_id FROM %s
		WHERE repo_full_name = $1
		ORDER BY channel_id`, r.table("subscriptions"))

	var channels []string
	if err := r.db.SelectContext(ctx, &channels, query, repo.Normalize()); err != nil {
		return nil, goerr.Wrap(err, "failed to get subscribers", goerr.V("repo", repo))
	}

	out := make([]types.ChannelID, len(channels))
	for i, ch := range channels {
		out[i] = types.ChannelID(ch)
	}
	return out, nil
}

// Subscribe registers a channel's interest in a repository. Subscriptions are
// owned by the command handler; this is used for seeding and tests.
func (r *Repository) Subscribe(ctx context.Context, channelID types.ChannelID, repo types.RepoFullName) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (channel_id, repo_full_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING`, r.table("subscriptions"))

	if _, err := r.db.ExecContext(ctx, query, channelID, repo.Normalize()); err != nil {
		return goerr.Wrap(err, "failed to subscribe",
			goerr.V("channelID", channelID),
			goerr.V("repo", repo),
		)
	}
	return nil
}

func pqStringArray(names []types.RepoFullName) pq.StringArray {
	arr := make(pq.StringArray, len(names))
	for i, name := range names {
		arr[i] = name.String()
	}
	return arr
}

func sortRepos(names []types.RepoFullName) {
	slices.Sort(names)
}
