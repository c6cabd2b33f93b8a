package memory

import (
	"sync"

	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

// Repository keeps installations, coverage and subscriptions in process
// memory. All mutations of one call happen under a single lock, which makes
// each of them atomic.
type Repository struct {
	mu sync.RWMutex

	installations map[types.GitHubAppInstallID]*installationData
	// coverage is the unique index: repository -> covering installation
	coverage map[types.RepoFullName]types.GitHubAppInstallID

	subscriptions map[types.RepoFullName]map[types.ChannelID]struct{}
}

type installationData struct {
	inst  *model.Installation
	repos map[types.RepoFullName]*model.InstallationRepository
}

var (
	_ interfaces.InstallationRegistry   = (*Repository)(nil)
	_ interfaces.SubscriptionRepository = (*Repository)(nil)
)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		installations: make(map[types.GitHubAppInstallID]*installationData),
		coverage:      make(map[types.RepoFullName]types.GitHubAppInstallID),
		subscriptions: make(map[types.RepoFullName]map[types.ChannelID]struct{}),
	}
}
