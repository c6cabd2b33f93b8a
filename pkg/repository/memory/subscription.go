package memory

import (
	"context"
	"slices"

	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

func (r *Repository) SubscribersOf(ctx context.Context, repo types.RepoFullName) ([]types.ChannelID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]types.ChannelID, 0, len(r.subscriptions[repo.Normalize()]))
	for ch := range r.subscriptions[repo.Normalize()] {
		channels = append(channels, ch)
	}
	slices.Sort(channels)
	return channels, nil
}

// Subscribe registers a channel's interest in a repository. Subscriptions are
// owned by the command handler; this is used for seeding and tests.
func (r *Repository) Subscribe(ctx context.Context, channelID types.ChannelID, repo types.RepoFullName) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := repo.Normalize()
	if _, ok := r.subscriptions[name]; !ok {
		r.subscriptions[name] = make(map[types.ChannelID]struct{})
	}
	r.subscriptions[name][channelID] = struct{}{}
	return nil
}

func (r *Repository) Unsubscribe(ctx context.Context, channelID types.ChannelID, repo types.RepoFullName) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subscriptions[repo.Normalize()], channelID)
	return nil
}
