package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . MessageSender GitHubApp AuditLog BigQuery

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
)

// MessageSender posts a plain text message to a chat channel.
type MessageSender interface {
	SendMessage(ctx context.Context, channelID types.ChannelID, text string) error
}

// GitHubApp reads installation state from the GitHub API. Lookups of an
// installation that does not exist return types.ErrUnknownInstallation.
type GitHubApp interface {
	FindInstallationID(ctx context.Context, owner string) (types.GitHubAppInstallID, error)
	GetInstallation(ctx context.Context, id types.GitHubAppInstallID) (*model.Installation, error)
	ListInstallationRepos(ctx context.Context, id types.GitHubAppInstallID) ([]types.RepoFullName, error)
}

// AuditLog records every handled lifecycle event.
type AuditLog interface {
	Put(ctx context.Context, record *model.AuditRecord) error
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
