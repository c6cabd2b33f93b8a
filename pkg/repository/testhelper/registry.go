package testhelper

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

// Backend is a storage implementation under test. Subscribe is not part of
// the core interfaces but every backend provides it for seeding.
type Backend interface {
	interfaces.InstallationRegistry
	interfaces.SubscriptionRepository
	Subscribe(ctx context.Context, channelID types.ChannelID, repo types.RepoFullName) error
}

// TestAll runs all test cases for an InstallationRegistry + SubscriptionRepository
// implementation. This is the main entry point for testing any backend.
func TestAll(t *testing.T, repo Backend) {
	t.Run("CreateAndDeleteInstallation", func(t *testing.T) {
		TestCreateAndDeleteInstallation(t, repo)
	})
	t.Run("DuplicateInstallation", func(t *testing.T) {
		TestDuplicateInstallation(t, repo)
	})
	t.Run("UnknownInstallation", func(t *testing.T) {
		TestUnknownInstallation(t, repo)
	})
	t.Run("AddRemoveRepositories", func(t *testing.T) {
		TestAddRemoveRepositories(t, repo)
	})
	t.Run("CoverageUniqueness", func(t *testing.T) {
		TestCoverageUniqueness(t, repo)
	})
	t.Run("Suspension", func(t *testing.T) {
		TestSuspension(t, repo)
	})
	t.Run("Subscribers", func(t *testing.T) {
		TestSubscribers(t, repo)
	})
}

func newInstallID() types.GitHubAppInstallID {
	return types.GitHubAppInstallID(rand.Int64N(1<<40) + 1)
}

func newRepoName() types.RepoFullName {
	return types.NewRepoFullName(
		fmt.Sprintf("owner-%s", uuid.New().String()[:8]),
		fmt.Sprintf("repo-%s", uuid.New().String()[:8]),
	)
}

func newInstallation(id types.GitHubAppInstallID) *model.Installation {
	return &model.Installation{
		ID: id,
		Account: model.Account{
			Login: fmt.Sprintf("account-%d", id),
			Type:  types.AccountTypeOrganization,
		},
		AppSlug:     "octorelay",
		InstalledAt: time.Now().UTC().Truncate(time.Second),
	}
}

func sorted(repos []types.RepoFullName) []types.RepoFullName {
	out := slices.Clone(repos)
	slices.Sort(out)
	return out
}

// TestCreateAndDeleteInstallation tests the created/deleted lifecycle and the coverage it leaves behind
func TestCreateAndDeleteInstallation(t *testing.T, repo Backend) {
	ctx := context.Background()

	id := newInstallID()
	repoA := newRepoName()
	repoB := newRepoName()

	added, err := repo.CreateInstallation(ctx, newInstallation(id), []types.RepoFullName{repoA, repoB, repoA})
	gt.NoError(t, err)
	gt.V(t, sorted(added)).Equal(sorted([]types.RepoFullName{repoA, repoB}))

	inst, err := repo.GetInstallation(ctx, id)
	gt.NoError(t, err)
	gt.V(t, inst.ID).Equal(id)
	gt.V(t, inst.Account.Type).Equal(types.AccountTypeOrganization)
	gt.True(t, inst.Active())

	covered, err := repo.CoverageOf(ctx, repoA)
	gt.NoError(t, err)
	gt.True(t, covered.IsPresent())
	gt.V(t, covered.MustGet()).Equal(id)

	repos, err := repo.InstallationRepos(ctx, id)
	gt.NoError(t, err)
	gt.V(t, sorted(repos)).Equal(sorted([]types.RepoFullName{repoA, repoB}))

	installations, err := repo.ListInstallations(ctx)
	gt.NoError(t, err)
	gt.True(t, slices.ContainsFunc(installations, func(x *model.Installation) bool { return x.ID == id }))

	removed, err := repo.DeleteInstallation(ctx, id)
	gt.NoError(t, err)
	gt.V(t, sorted(removed)).Equal(sorted([]types.RepoFullName{repoA, repoB}))

	for _, name := range []types.RepoFullName{repoA, repoB} {
		covered, err := repo.CoverageOf(ctx, name)
		gt.NoError(t, err)
		gt.True(t, covered.IsAbsent())
	}

	repos, err = repo.InstallationRepos(ctx, id)
	gt.NoError(t, err)
	gt.V(t, len(repos)).Equal(0)
}

// TestDuplicateInstallation tests redelivery of an identical created event and a conflicting one
func TestDuplicateInstallation(t *testing.T, repo Backend) {
	ctx := context.Background()

	id := newInstallID()
	repoA := newRepoName()
	inst := newInstallation(id)

	_, err := repo.CreateInstallation(ctx, inst, []types.RepoFullName{repoA})
	gt.NoError(t, err)

	// identical content is a no-op
	added, err := repo.CreateInstallation(ctx, inst, []types.RepoFullName{repoA})
	gt.NoError(t, err)
	gt.V(t, len(added)).Equal(0)

	// case differences are the same repository
	upper := types.RepoFullName(strings.ToUpper(string(repoA)))
	added, err = repo.CreateInstallation(ctx, inst, []types.RepoFullName{upper})
	gt.NoError(t, err)
	gt.V(t, len(added)).Equal(0)

	// different content is a duplicate
	other := *inst
	other.Account.Login = "someone-else"
	_, err = repo.CreateInstallation(ctx, &other, []types.RepoFullName{repoA})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrDuplicateInstallation))

	repos, err := repo.InstallationRepos(ctx, id)
	gt.NoError(t, err)
	gt.V(t, repos).Equal([]types.RepoFullName{repoA})

	_, err = repo.DeleteInstallation(ctx, id)
	gt.NoError(t, err)
}

// TestUnknownInstallation tests operations against an installation that does not exist
func TestUnknownInstallation(t *testing.T, repo Backend) {
	ctx := context.Background()
	id := newInstallID()

	_, err := repo.DeleteInstallation(ctx, id)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnknownInstallation))

	_, err = repo.GetInstallation(ctx, id)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnknownInstallation))

	_, err = repo.AddRepositories(ctx, id, []types.RepoFullName{newRepoName()})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrUnknownInstallation))

	removed, err := repo.RemoveRepositories(ctx, id, []types.RepoFullName{newRepoName()})
	gt.NoError(t, err)
	gt.V(t, len(removed)).Equal(0)
}

// TestAddRemoveRepositories tests idempotent coverage edits
func TestAddRemoveRepositories(t *testing.T, repo Backend) {
	ctx := context.Background()

	id := newInstallID()
	repoA := newRepoName()
	repoB := newRepoName()
	repoC := newRepoName()

	_, err := repo.CreateInstallation(ctx, newInstallation(id), []types.RepoFullName{repoA})
	gt.NoError(t, err)

	added, err := repo.AddRepositories(ctx, id, []types.RepoFullName{repoA, repoB})
	gt.NoError(t, err)
	gt.V(t, added).Equal([]types.RepoFullName{repoB})

	// second add of the same repository is a silent no-op
	added, err = repo.AddRepositories(ctx, id, []types.RepoFullName{repoB})
	gt.NoError(t, err)
	gt.V(t, len(added)).Equal(0)

	repos, err := repo.InstallationRepos(ctx, id)
	gt.NoError(t, err)
	gt.V(t, sorted(repos)).Equal(sorted([]types.RepoFullName{repoA, repoB}))

	removed, err := repo.RemoveRepositories(ctx, id, []types.RepoFullName{repoB, repoC})
	gt.NoError(t, err)
	gt.V(t, removed).Equal([]types.RepoFullName{repoB})

	removed, err = repo.RemoveRepositories(ctx, id, []types.RepoFullName{repoB})
	gt.NoError(t, err)
	gt.V(t, len(removed)).Equal(0)

	covered, err := repo.CoverageOf(ctx, repoB)
	gt.NoError(t, err)
	gt.True(t, covered.IsAbsent())

	covered, err = repo.CoverageOf(ctx, repoA)
	gt.NoError(t, err)
	gt.V(t, covered.MustGet()).Equal(id)

	_, err = repo.DeleteInstallation(ctx, id)
	gt.NoError(t, err)
}

// TestCoverageUniqueness tests that a repository never appears under two installations
func TestCoverageUniqueness(t *testing.T, repo Backend) {
	ctx := context.Background()

	id1 := newInstallID()
	id2 := newInstallID()
	shared := newRepoName()
	own := newRepoName()

	_, err := repo.CreateInstallation(ctx, newInstallation(id1), []types.RepoFullName{shared})
	gt.NoError(t, err)

	t.Run("created event with a covered repository is rejected atomically", func(t *testing.T) {
		_, err := repo.CreateInstallation(ctx, newInstallation(id2), []types.RepoFullName{own, shared})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrDataConsistencyViolation))

		_, err = repo.GetInstallation(ctx, id2)
		gt.True(t, errors.Is(err, types.ErrUnknownInstallation))

		covered, err := repo.CoverageOf(ctx, own)
		gt.NoError(t, err)
		gt.True(t, covered.IsAbsent())
	})

	t.Run("added event with a covered repository is rejected atomically", func(t *testing.T) {
		_, err := repo.CreateInstallation(ctx, newInstallation(id2), nil)
		gt.NoError(t, err)

		_, err = repo.AddRepositories(ctx, id2, []types.RepoFullName{own, shared})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrDataConsistencyViolation))

		repos, err := repo.InstallationRepos(ctx, id2)
		gt.NoError(t, err)
		gt.V(t, len(repos)).Equal(0)
	})

	covered, err := repo.CoverageOf(ctx, shared)
	gt.NoError(t, err)
	gt.V(t, covered.MustGet()).Equal(id1)

	_, err = repo.DeleteInstallation(ctx, id1)
	gt.NoError(t, err)
	_, err = repo.DeleteInstallation(ctx, id2)
	gt.NoError(t, err)
}

// TestSuspension tests that suspension returns the coverage only on state change
func TestSuspension(t *testing.T, repo Backend) {
	ctx := context.Background()

	id := newInstallID()
	repoA := newRepoName()

	_, err := repo.CreateInstallation(ctx, newInstallation(id), []types.RepoFullName{repoA})
	gt.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	affected, err := repo.SetSuspended(ctx, id, &at)
	gt.NoError(t, err)
	gt.V(t, affected).Equal([]types.RepoFullName{repoA})

	inst, err := repo.GetInstallation(ctx, id)
	gt.NoError(t, err)
	gt.False(t, inst.Active())

	// suspending twice changes nothing
	affected, err = repo.SetSuspended(ctx, id, &at)
	gt.NoError(t, err)
	gt.V(t, len(affected)).Equal(0)

	affected, err = repo.SetSuspended(ctx, id, nil)
	gt.NoError(t, err)
	gt.V(t, affected).Equal([]types.RepoFullName{repoA})

	inst, err = repo.GetInstallation(ctx, id)
	gt.NoError(t, err)
	gt.True(t, inst.Active())

	_, err = repo.SetSuspended(ctx, newInstallID(), &at)
	gt.True(t, errors.Is(err, types.ErrUnknownInstallation))

	_, err = repo.DeleteInstallation(ctx, id)
	gt.NoError(t, err)
}

// TestSubscribers tests the subscriber-side lookup
func TestSubscribers(t *testing.T, repo Backend) {
	ctx := context.Background()

	repoA := newRepoName()
	ch1 := types.ChannelID("C-" + uuid.NewString()[:8])
	ch2 := types.ChannelID("C-" + uuid.NewString()[:8])

	channels, err := repo.SubscribersOf(ctx, repoA)
	gt.NoError(t, err)
	gt.V(t, len(channels)).Equal(0)

	gt.NoError(t, repo.Subscribe(ctx, ch1, repoA))
	gt.NoError(t, repo.Subscribe(ctx, ch2, repoA))
	gt.NoError(t, repo.Subscribe(ctx, ch1, repoA))

	channels, err = repo.SubscribersOf(ctx, repoA)
	gt.NoError(t, err)
	gt.V(t, len(channels)).Equal(2)
	gt.True(t, slices.Contains(channels, ch1))
	gt.True(t, slices.Contains(channels, ch2))
}
