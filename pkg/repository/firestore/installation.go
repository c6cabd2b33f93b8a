package firestore

import (
	"context"
	"errors"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type installationDoc struct {
	InstallationID int64      `firestore:"installation_id"`
	AccountLogin   string     `firestore:"account_login"`
	AccountType    string     `firestore:"account_type"`
	AppSlug        string     `firestore:"app_slug"`
	InstalledAt    time.Time  `firestore:"installed_at"`
	SuspendedAt    *time.Time `firestore:"suspended_at"`
}

func newInstallationDoc(inst *model.Installation) *installationDoc {
	return &installationDoc{
		InstallationID: int64(inst.ID),
		AccountLogin:   inst.Account.Login,
		AccountType:    string(inst.Account.Type),
		AppSlug:        string(inst.AppSlug),
		InstalledAt:    inst.InstalledAt,
		SuspendedAt:    inst.SuspendedAt,
	}
}

func (x *installationDoc) toModel() *model.Installation {
	return &model.Installation{
		ID: types.GitHubAppInstallID(x.InstallationID),
		Account: model.Account{
			Login: x.AccountLogin,
			Type:  types.AccountType(x.AccountType),
		},
		AppSlug:     types.GitHubAppSlug(x.AppSlug),
		InstalledAt: x.InstalledAt,
		SuspendedAt: x.SuspendedAt,
	}
}

type coverageDoc struct {
	InstallationID int64     `firestore:"installation_id"`
	RepoFullName   string    `firestore:"repo_full_name"`
	AddedAt        time.Time `firestore:"added_at"`
}

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

	var added []types.RepoFullName
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		added = nil
		instRef := r.installationRef(inst.ID)

		existing, err := r.getInstallation(tx, inst.ID)
		switch {
		case err == nil:
			current, err := r.installationRepos(tx, inst.ID)
			if err != nil {
				return err
			}
			if existing.SameContent(inst) && model.SameRepos(current, names) {
				return nil
			}
			return goerr.Wrap(types.ErrDuplicateInstallation, "installation already exists with different content",
				goerr.V("installationID", inst.ID),
			)
		case !errors.Is(err, types.ErrUnknownInstallation):
			return err
		}

		refs, err := r.uncoveredRefs(tx, inst.ID, names)
		if err != nil {
			return err
		}

		if err := tx.Create(instRef, newInstallationDoc(inst)); err != nil {
			return goerr.Wrap(err, "failed to create installation", goerr.V("installationID", inst.ID))
		}
		for i, ref := range refs {
			if ref == nil {
				continue
			}
			if err := tx.Create(ref, &coverageDoc{
				InstallationID: int64(inst.ID),
				RepoFullName:   names[i].String(),
				AddedAt:        now,
			}); err != nil {
				return goerr.Wrap(err, "failed to create coverage", goerr.V("repo", names[i]))
			}
			added = append(added, names[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// uncoveredRefs reads the coverage document of every name and returns the
// refs to create, nil where the edge already belongs to id. Reads must
// precede writes in a Firestore transaction.
func (r *Repository) uncoveredRefs(tx *firestore.Transaction, id types.GitHubAppInstallID, names []types.RepoFullName) ([]*firestore.DocumentRef, error) {
	refs := make([]*firestore.DocumentRef, len(names))
	for i, name := range names {
		ref, err := r.coverageRef(name)
		if err != nil {
			return nil, err
		}

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				refs[i] = ref
				continue
			}
			return nil, goerr.Wrap(err, "failed to get coverage", goerr.V("repo", name))
		}

		var doc coverageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode coverage", goerr.V("repo", name))
		}
		if types.GitHubAppInstallID(doc.InstallationID) != id {
			return nil, goerr.Wrap(types.ErrDataConsistencyViolation, "repository is already covered by another installation",
				goerr.V("repo", name),
				goerr.V("installationID", id),
				goerr.V("coveredBy", doc.InstallationID),
			)
		}
	}
	return refs, nil
}

func (r *Repository) DeleteInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	var removed []types.RepoFullName
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := r.getInstallation(tx, id); err != nil {
			return err
		}

		snaps, err := tx.Documents(r.coverageQuery(id)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to get coverage", goerr.V("installationID", id))
		}

		removed = make([]types.RepoFullName, 0, len(snaps))
		for _, snap := range snaps {
			var doc coverageDoc
			if err := snap.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode coverage", goerr.V("installationID", id))
			}
			removed = append(removed, types.RepoFullName(doc.RepoFullName))
		}

		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete coverage", goerr.V("docID", snap.Ref.ID))
			}
		}
		if err := tx.Delete(r.installationRef(id)); err != nil {
			return goerr.Wrap(err, "failed to delete installation", goerr.V("installationID", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(removed)
	return removed, nil
}

func (r *Repository) AddRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}
	now := logging.CtxTime(ctx)

	var added []types.RepoFullName
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		added = nil
		if _, err := r.getInstallation(tx, id); err != nil {
			return err
		}

		refs, err := r.uncoveredRefs(tx, id, names)
		if err != nil {
			return err
		}

		for i, ref := range refs {
			if ref == nil {
				continue
			}
			if err := tx.Create(ref, &coverageDoc{
				InstallationID: int64(id),
				RepoFullName:   names[i].String(),
				AddedAt:        now,
			}); err != nil {
				return goerr.Wrap(err, "failed to create coverage", goerr.V("repo", names[i]))
			}
			added = append(added, names[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func (r *Repository) RemoveRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}

	var removed []types.RepoFullName
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		removed = nil
		var refs []*firestore.DocumentRef

		for _, name := range names {
			ref, err := r.coverageRef(name)
			if err != nil {
				return err
			}
			snap, err := tx.Get(ref)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					continue
				}
				return goerr.Wrap(err, "failed to get coverage", goerr.V("repo", name))
			}

			var doc coverageDoc
			if err := snap.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode coverage", goerr.V("repo", name))
			}
			// an edge owned by another installation is not ours to remove
			if types.GitHubAppInstallID(doc.InstallationID) != id {
				continue
			}
			refs = append(refs, ref)
			removed = append(removed, name)
		}

		for _, ref := range refs {
			if err := tx.Delete(ref); err != nil {
				return goerr.Wrap(err, "failed to delete coverage", goerr.V("docID", ref.ID))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (r *Repository) SetSuspended(ctx context.Context, id types.GitHubAppInstallID, at *time.Time) ([]types.RepoFullName, error) {
	var affected []types.RepoFullName
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		affected = nil
		inst, err := r.getInstallation(tx, id)
		if err != nil {
			return err
		}

		changed := inst.Active() != (at == nil)
		if changed {
			if affected, err = r.installationRepos(tx, id); err != nil {
				return err
			}
		}

		inst.SuspendedAt = at
		if err := tx.Set(r.installationRef(id), newInstallationDoc(inst)); err != nil {
			return goerr.Wrap(err, "failed to update suspension", goerr.V("installationID", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

func (r *Repository) GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error) {
	snap, err := r.installationRef(id).Get(ctx)
	return decodeInstallation(snap, err, id)
}

func (r *Repository) ListInstallations(ctx context.Context) ([]*model.Installation, error) {
	iter := r.client.Collection(collectionInstallation).OrderBy("installation_id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var installations []*model.Installation
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate installations")
		}

		var doc installationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode installation", goerr.V("docID", snap.Ref.ID))
		}
		installations = append(installations, doc.toModel())
	}

	return installations, nil
}

func (r *Repository) CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error) {
	ref, err := r.coverageRef(repo.Normalize())
	if err != nil {
		return mo.None[types.GitHubAppInstallID](), err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return mo.None[types.GitHubAppInstallID](), nil
		}
		return mo.None[types.GitHubAppInstallID](), goerr.Wrap(err, "failed to get coverage", goerr.V("repo", repo))
	}

	var doc coverageDoc
	if err := snap.DataTo(&doc); err != nil {
		return mo.None[types.GitHubAppInstallID](), goerr.Wrap(err, "failed to decode coverage", goerr.V("repo", repo))
	}

	return mo.Some(types.GitHubAppInstallID(doc.InstallationID)), nil
}

func (r *Repository) InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	iter := r.coverageQuery(id).Documents(ctx)
	defer iter.Stop()

	var names []types.RepoFullName
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate coverage", goerr.V("installationID", id))
		}

		var doc coverageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode coverage", goerr.V("docID", snap.Ref.ID))
		}
		names = append(names, types.RepoFullName(doc.RepoFullName))
	}

	slices.Sort(names)
	return names, nil
}

func (r *Repository) coverageQuery(id types.GitHubAppInstallID) firestore.Query {
	return r.client.Collection(collectionCoverage).Where("installation_id", "==", int64(id))
}

func (r *Repository) getInstallation(tx *firestore.Transaction, id types.GitHubAppInstallID) (*model.Installation, error) {
	snap, err := tx.Get(r.installationRef(id))
	return decodeInstallation(snap, err, id)
}

func (r *Repository) installationRepos(tx *firestore.Transaction, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	snaps, err := tx.Documents(r.coverageQuery(id)).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get coverage", goerr.V("installationID", id))
	}

	names := make([]types.RepoFullName, 0, len(snaps))
	for _, snap := range snaps {
		var doc coverageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode coverage", goerr.V("docID", snap.Ref.ID))
		}
		names = append(names, types.RepoFullName(doc.RepoFullName))
	}

	slices.Sort(names)
	return names, nil
}

func decodeInstallation(snap *firestore.DocumentSnapshot, err error, id types.GitHubAppInstallID) (*model.Installation, error) {
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found",
				goerr.V("installationID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get installation",
			goerr.V("installationID", id),
		)
	}

	var doc installationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode installation",
			goerr.V("installationID", id),
		)
	}

	return doc.toModel(), nil
}
