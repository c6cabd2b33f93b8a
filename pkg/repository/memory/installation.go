package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

func (r *Repository) CreateInstallation(ctx context.Context, inst *model.Installation, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}

	now := logging.CtxTime(ctx)
	inst = inst.WithDefaults(now)

	r.mu.Lock()
	defer r.mu.Unlock()

	if data, exists := r.installations[inst.ID]; exists {
		if data.inst.SameContent(inst) && model.SameRepos(repoKeys(data.repos), names) {
			return nil, nil
		}
		return nil, goerr.Wrap(types.ErrDuplicateInstallation, "installation already exists with different content",
			goerr.V("installationID", inst.ID),
		)
	}

	if err := r.checkCoverage(inst.ID, names); err != nil {
		return nil, err
	}

	data := &installationData{
		inst:  inst,
		repos: make(map[types.RepoFullName]*model.InstallationRepository, len(names)),
	}
	r.installations[inst.ID] = data

	for _, name := range names {
		data.repos[name] = &model.InstallationRepository{
			InstallationID: inst.ID,
			RepoFullName:   name,
			AddedAt:        now,
		}
		r.coverage[name] = inst.ID
	}

	return names, nil
}

func (r *Repository) DeleteInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found",
			goerr.V("installationID", id),
		)
	}

	removed := repoKeys(data.repos)
	for _, name := range removed {
		delete(r.coverage, name)
	}
	delete(r.installations, id)

	return removed, nil
}

func (r *Repository) AddRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found",
			goerr.V("installationID", id),
		)
	}

	if err := r.checkCoverage(id, names); err != nil {
		return nil, err
	}

	now := logging.CtxTime(ctx)
	var added []types.RepoFullName
	for _, name := range names {
		if _, ok := data.repos[name]; ok {
			continue
		}
		data.repos[name] = &model.InstallationRepository{
			InstallationID: id,
			RepoFullName:   name,
			AddedAt:        now,
		}
		r.coverage[name] = id
		added = append(added, name)
	}

	return added, nil
}

func (r *Repository) RemoveRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, nil
	}

	var removed []types.RepoFullName
	for _, name := range names {
		if _, ok := data.repos[name]; !ok {
			continue
		}
		delete(data.repos, name)
		delete(r.coverage, name)
		removed = append(removed, name)
	}

	return removed, nil
}

func (r *Repository) SetSuspended(ctx context.Context, id types.GitHubAppInstallID, at *time.Time) ([]types.RepoFullName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found",
			goerr.V("installationID", id),
		)
	}

	wasActive := data.inst.Active()
	if at != nil {
		ts := *at
		data.inst.SuspendedAt = &ts
	} else {
		data.inst.SuspendedAt = nil
	}

	if wasActive == data.inst.Active() {
		return nil, nil
	}
	return repoKeys(data.repos), nil
}

func (r *Repository) GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found",
			goerr.V("installationID", id),
		)
	}

	return copyInstallation(data.inst), nil
}

func (r *Repository) ListInstallations(ctx context.Context) ([]*model.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	installations := make([]*model.Installation, 0, len(r.installations))
	for _, data := range r.installations {
		installations = append(installations, copyInstallation(data.inst))
	}
	slices.SortFunc(installations, func(a, b *model.Installation) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return installations, nil
}

func (r *Repository) CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.coverage[repo.Normalize()]; ok {
		return mo.Some(id), nil
	}
	return mo.None[types.GitHubAppInstallID](), nil
}

func (r *Repository) InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.installations[id]
	if !exists {
		return nil, nil
	}
	return repoKeys(data.repos), nil
}

// checkCoverage must be called with the write lock held.
func (r *Repository) checkCoverage(id types.GitHubAppInstallID, names []types.RepoFullName) error {
	for _, name := range names {
		if owner, ok := r.coverage[name]; ok && owner != id {
			return goerr.Wrap(types.ErrDataConsistencyViolation, "repository is already covered by another installation",
				goerr.V("repo", name),
				goerr.V("installationID", id),
				goerr.V("coveredBy", owner),
			)
		}
	}
	return nil
}

func repoKeys(repos map[types.RepoFullName]*model.InstallationRepository) []types.RepoFullName {
	keys := make([]types.RepoFullName, 0, len(repos))
	for name := range repos {
		keys = append(keys, name)
	}
	slices.Sort(keys)
	return keys
}

func copyInstallation(inst *model.Installation) *model.Installation {
	if inst == nil {
		return nil
	}
	cpy := *inst
	if inst.SuspendedAt != nil {
		ts := *inst.SuspendedAt
		cpy.SuspendedAt = &ts
	}
	return &cpy
}
