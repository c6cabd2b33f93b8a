package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/samber/mo"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

// Column names for github_installations table
var installationColumns = []string{
	"installation_id",
	"account_login",
	"account_type",
	"app_slug",
	"installed_at",
	"suspended_at",
}

type installationRow struct {
	InstallationID int64        `db:"installation_id"`
	AccountLogin   string       `db:"account_login"`
	AccountType    string       `db:"account_type"`
	AppSlug        string       `db:"app_slug"`
	InstalledAt    time.Time    `db:"installed_at"`
	SuspendedAt    sql.NullTime `db:"suspended_at"`
}

func (x *installationRow) toModel() *model.Installation {
	inst := &model.Installation{
		ID: types.GitHubAppInstallID(x.InstallationID),
		Account: model.Account{
			Login: x.AccountLogin,
			Type:  types.AccountType(x.AccountType),
		},
		AppSlug:     types.GitHubAppSlug(x.AppSlug),
		InstalledAt: x.InstalledAt,
	}
	if x.SuspendedAt.Valid {
		ts := x.SuspendedAt.Time
		inst.SuspendedAt = &ts
	}
	return inst
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toRepoNames(names []string) []types.RepoFullName {
	out := make([]types.RepoFullName, len(names))
	for i, name := range names {
		out[i] = types.RepoFullName(name)
	}
	return out
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
	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (installation_id) DO NOTHING
			RETURNING installation_id`, r.table("github_installations"), strings.Join(installationColumns, ", "))

		var inserted []int64
		if err := tx.SelectContext(ctx, &inserted, query,
			inst.ID, inst.Account.Login, inst.Account.Type, inst.AppSlug, inst.InstalledAt, toNullTime(inst.SuspendedAt),
		); err != nil {
			return goerr.Wrap(err, "failed to insert installation", goerr.V("installationID", inst.ID))
		}

		if len(inserted) == 0 {
			return r.compareExisting(ctx, tx, inst, names)
		}

		for _, name := range names {
			ok, err := r.insertCoverage(ctx, tx, inst.ID, name, now)
			if err != nil {
				return err
			}
			if ok {
				added = append(added, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// compareExisting decides whether a created event for an existing
// installation is a redelivery (nil) or a conflicting duplicate.
func (r *Repository) compareExisting(ctx context.Context, tx *sqlx.Tx, inst *model.Installation, names []types.RepoFullName) error {
	existing, err := r.getInstallation(ctx, tx, inst.ID, false)
	if err != nil {
		return err
	}
	current, err := r.installationRepos(ctx, tx, inst.ID)
	if err != nil {
		return err
	}

	if existing.SameContent(inst) && model.SameRepos(current, names) {
		return nil
	}
	return goerr.Wrap(types.ErrDuplicateInstallation, "installation already exists with different content",
		goerr.V("installationID", inst.ID),
	)
}

// insertCoverage inserts one coverage edge. It returns false when the edge
// already exists, and ErrDataConsistencyViolation when another installation
// covers the repository.
func (r *Repository) insertCoverage(ctx context.Context, tx *sqlx.Tx, id types.GitHubAppInstallID, name types.RepoFullName, now time.Time) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (installation_id, repo_full_name, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
		RETURNING repo_full_name`, r.table("installation_repositories"))

	var inserted []string
	if err := tx.SelectContext(ctx, &inserted, query, id, name, now); err != nil {
		return false, goerr.Wrap(err, "failed to insert installation repository",
			goerr.V("installationID", id),
			goerr.V("repo", name),
		)
	}
	if len(inserted) > 0 {
		return true, nil
	}

	var owner int64
	ownerQuery := fmt.Sprintf(`SELECT installation_id FROM %s WHERE repo_full_name = $1`, r.table("installation_repositories"))
	if err := tx.GetContext(ctx, &owner, ownerQuery, name); err != nil {
		return false, goerr.Wrap(err, "failed to get covering installation", goerr.V("repo", name))
	}

	if types.GitHubAppInstallID(owner) != id {
		return false, goerr.Wrap(types.ErrDataConsistencyViolation, "repository is already covered by another installation",
			goerr.V("repo", name),
			goerr.V("installationID", id),
			goerr.V("coveredBy", owner),
		)
	}
	return false, nil
}

func (r *Repository) DeleteInstallation(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	var removed []types.RepoFullName
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := r.getInstallation(ctx, tx, id, true); err != nil {
			return err
		}

		// coverage must be captured before it is deleted
		repos, err := r.installationRepos(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = repos

		deleteRepos := fmt.Sprintf(`DELETE FROM %s WHERE installation_id = $1`, r.table("installation_repositories"))
		if _, err := tx.ExecContext(ctx, deleteRepos, id); err != nil {
			return goerr.Wrap(err, "failed to delete installation repositories", goerr.V("installationID", id))
		}

		deleteInst := fmt.Sprintf(`DELETE FROM %s WHERE installation_id = $1`, r.table("github_installations"))
		if _, err := tx.ExecContext(ctx, deleteInst, id); err != nil {
			return goerr.Wrap(err, "failed to delete installation", goerr.V("installationID", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func (r *Repository) AddRepositories(ctx context.Context, id types.GitHubAppInstallID, repos []types.RepoFullName) ([]types.RepoFullName, error) {
	names, err := model.NormalizeRepos(repos)
	if err != nil {
		return nil, err
	}
	now := logging.CtxTime(ctx)

	var added []types.RepoFullName
	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		// lock the installation row so a concurrent delete cannot interleave
		if _, err := r.getInstallation(ctx, tx, id, true); err != nil {
			return err
		}

		for _, name := range names {
			ok, err := r.insertCoverage(ctx, tx, id, name, now)
			if err != nil {
				return err
			}
			if ok {
				added = append(added, name)
			}
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
	if len(names) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE installation_id = $1 AND repo_full_name = ANY($2)
		RETURNING repo_full_name`, r.table("installation_repositories"))

	var deleted []string
	err = r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &deleted, query, id, pqStringArray(names)); err != nil {
			return goerr.Wrap(err, "failed to delete installation repositories",
				goerr.V("installationID", id),
				goerr.V("repos", names),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	removed := toRepoNames(deleted)
	sortRepos(removed)
	return removed, nil
}

func (r *Repository) SetSuspended(ctx context.Context, id types.GitHubAppInstallID, at *time.Time) ([]types.RepoFullName, error) {
	var affected []types.RepoFullName
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		inst, err := r.getInstallation(ctx, tx, id, true)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`UPDATE %s SET suspended_at = $2 WHERE installation_id = $1`, r.table("github_installations"))
		if _, err := tx.ExecContext(ctx, query, id, toNullTime(at)); err != nil {
			return goerr.Wrap(err, "failed to update suspension", goerr.V("installationID", id))
		}

		if inst.Active() == (at == nil) {
			return nil
		}

		affected, err = r.installationRepos(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

func (r *Repository) GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error) {
	return r.getInstallation(ctx, r.db, id, false)
}

func (r *Repository) ListInstallations(ctx context.Context) ([]*model.Installation, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY installation_id`,
		strings.Join(installationColumns, ", "), r.table("github_installations"))

	var rows []installationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, goerr.Wrap(err, "failed to list installations")
	}

	installations := make([]*model.Installation, len(rows))
	for i := range rows {
		installations[i] = rows[i].toModel()
	}
	return installations, nil
}

func (r *Repository) CoverageOf(ctx context.Context, repo types.RepoFullName) (mo.Option[types.GitHubAppInstallID], error) {
	query := fmt.Sprintf(`SELECT installation_id FROM %s WHERE repo_full_name = $1`, r.table("installation_repositories"))

	var id int64
	if err := r.db.GetContext(ctx, &id, query, repo.Normalize()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[types.GitHubAppInstallID](), nil
		}
		return mo.None[types.GitHubAppInstallID](), goerr.Wrap(err, "failed to get coverage", goerr.V("repo", repo))
	}

	return mo.Some(types.GitHubAppInstallID(id)), nil
}

func (r *Repository) InstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	return r.installationRepos(ctx, r.db, id)
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (r *Repository) getInstallation(ctx context.Context, q queryer, id types.GitHubAppInstallID, forUpdate bool) (*model.Installation, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE installation_id = $1`,
		strings.Join(installationColumns, ", "), r.table("github_installations"))
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row installationRow
	if err := q.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(types.ErrUnknownInstallation, "installation not found", goerr.V("installationID", id))
		}
		return nil, goerr.Wrap(err, "failed to get installation", goerr.V("installationID", id))
	}

	return row.toModel(), nil
}

func (r *Repository) installationRepos(ctx context.Context, q queryer, id types.GitHubAppInstallID) ([]types.RepoFullName, error) {
	query := fmt.Sprintf(`
		SELECT repo_full_name FROM %s
		WHERE installation_id = $1
		ORDER BY repo_full_name`, r.table("installation_repositories"))

	var names []string
	if err := q.SelectContext(ctx, &names, query, id); err != nil {
		return nil, goerr.Wrap(err, "failed to list installation repositories", goerr.V("installationID", id))
	}

	return toRepoNames(names), nil
}
