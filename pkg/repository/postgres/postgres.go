package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/utils/safe"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"
)

// Repository stores installations, coverage and subscriptions in PostgreSQL.
// The unique index on installation_repositories.repo_full_name enforces that
// a repository is covered by at most one installation.
type Repository struct {
	db     *sqlx.DB
	schema string
}

var (
	_ interfaces.InstallationRegistry   = (*Repository)(nil)
	_ interfaces.SubscriptionRepository = (*Repository)(nil)
)

var ptnSchemaName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// New opens a connection and verifies it with a ping.
func New(ctx context.Context, databaseURL, schema string) (*Repository, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}

	if err := db.PingContext(ctx); err != nil {
		safe.Close(db)
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	return NewWithDB(db, schema)
}

// NewWithDB wraps an existing connection.
func NewWithDB(db *sqlx.DB, schema string) (*Repository, error) {
	if schema == "" {
		schema = "public"
	}
	// schema is interpolated into queries, so it must be a plain identifier
	if !ptnSchemaName.MatchString(schema) {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid schema name", goerr.V("schema", schema))
	}

	return &Repository{db: db, schema: schema}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const schemaDDL = `
CREATE SCHEMA IF NOT EXISTS %[1]s;

CREATE TABLE IF NOT EXISTS %[1]s.github_installations (
	installation_id BIGINT PRIMARY KEY,
	account_login   TEXT NOT NULL,
	account_type    TEXT NOT NULL,
	app_slug        TEXT NOT NULL,
	installed_at    TIMESTAMPTZ NOT NULL,
	suspended_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS %[1]s.installation_repositories (
	installation_id BIGINT NOT NULL REFERENCES %[1]s.github_installations (installation_id),
	repo_full_name  TEXT NOT NULL,
	added_at        TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (installation_id, repo_full_name)
);

CREATE UNIQUE INDEX IF NOT EXISTS installation_repositories_repo_full_name_key
	ON %[1]s.installation_repositories (repo_full_name);

CREATE TABLE IF NOT EXISTS %[1]s.subscriptions (
	channel_id     TEXT NOT NULL,
	repo_full_name TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (channel_id, repo_full_name)
);

CREATE INDEX IF NOT EXISTS subscriptions_repo_full_name_idx
	ON %[1]s.subscriptions (repo_full_name);
`

// Migrate creates the schema, tables and indexes if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(schemaDDL, r.schema)); err != nil {
		return goerr.Wrap(err, "failed to migrate database schema", goerr.V("schema", r.schema))
	}
	return nil
}

// withTx runs fn in one transaction. Any error rolls the whole unit back.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer safe.Rollback(tx.Tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func (r *Repository) table(name string) string {
	return r.schema + "." + name
}
