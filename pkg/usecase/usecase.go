package usecase

import (
	"sync"

	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra"
)

type UseCase struct {
	clients    *infra.Clients
	dispatcher *Dispatcher
	locks      *installationLocks

	dispatchConcurrency int
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithDispatchConcurrency sets how many messages are sent in parallel.
func WithDispatchConcurrency(n int) Option {
	return func(x *UseCase) {
		x.dispatchConcurrency = n
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:             clients,
		locks:               &installationLocks{locks: make(map[types.GitHubAppInstallID]*sync.Mutex)},
		dispatchConcurrency: defaultDispatchConcurrency,
	}

	for _, opt := range options {
		opt(uc)
	}

	uc.dispatcher = NewDispatcher(clients.MessageSender(), WithConcurrency(uc.dispatchConcurrency))
	return uc
}

// installationLocks serializes lifecycle events of one installation. Entries
// are kept for the process lifetime; their number is bounded by the number of
// installations of the App.
type installationLocks struct {
	mu    sync.Mutex
	locks map[types.GitHubAppInstallID]*sync.Mutex
}

func (x *installationLocks) lock(id types.GitHubAppInstallID) func() {
	x.mu.Lock()
	m, ok := x.locks[id]
	if !ok {
		m = &sync.Mutex{}
		x.locks[id] = m
	}
	x.mu.Unlock()

	m.Lock()
	return m.Unlock
}
