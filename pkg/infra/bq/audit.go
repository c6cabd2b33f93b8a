package bq

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/utils/logging"
)

const (
	defaultInsertRetry     = 3
	defaultInsertRetryWait = 2 * time.Second
)

// AuditLog appends handled lifecycle events to a BigQuery table. The table
// is created or its schema merged on first use.
type AuditLog struct {
	client interfaces.BigQuery

	mu     sync.Mutex
	schema bigquery.Schema

	retry     int
	retryWait time.Duration
}

var _ interfaces.AuditLog = (*AuditLog)(nil)

type AuditLogOption func(*AuditLog)

// WithRetryWait sets the wait between inserts while a schema update propagates.
func WithRetryWait(d time.Duration) AuditLogOption {
	return func(x *AuditLog) {
		x.retryWait = d
	}
}

func NewAuditLog(client interfaces.BigQuery, options ...AuditLogOption) *AuditLog {
	x := &AuditLog{
		client:    client,
		retry:     defaultInsertRetry,
		retryWait: defaultInsertRetryWait,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *AuditLog) Put(ctx context.Context, record *model.AuditRecord) error {
	schema, updated, err := x.prepareTable(ctx)
	if err != nil {
		return err
	}

	raw := record.Raw()
	for i := 0; ; i++ {
		err := x.client.Insert(ctx, schema, raw)
		if err == nil {
			return nil
		}
		if !updated || !IsSchemaNotFoundError(err) || i >= x.retry {
			return goerr.Wrap(err, "failed to insert audit record", goerr.V("id", record.ID))
		}

		logging.From(ctx).Debug("schema update not propagated yet, retrying insert", "attempt", i+1)
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "canceled while retrying insert", goerr.V("id", record.ID))
		case <-time.After(x.retryWait):
		}
	}
}

// prepareTable creates the table or merges the schema once per process.
// updated is true when the schema was changed by this call.
func (x *AuditLog) prepareTable(ctx context.Context) (schema bigquery.Schema, updated bool, err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.schema != nil {
		return x.schema, false, nil
	}

	schema, err = bqs.Infer(model.AuditRecord{})
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to infer audit record schema")
	}

	metaData, err := x.client.GetMetadata(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}

	switch {
	case metaData == nil:
		if err := x.client.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, false, goerr.Wrap(err, "failed to create BigQuery table")
		}

	case bqs.Equal(metaData.Schema, schema):

	default:
		merged, err := bqs.Merge(metaData.Schema, schema)
		if err != nil {
			return nil, false, goerr.Wrap(err, "failed to merge BigQuery schema")
		}
		if err := x.client.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
			Schema: merged,
		}, metaData.ETag); err != nil {
			return nil, false, goerr.Wrap(err, "failed to update BigQuery table")
		}
		schema = merged
		updated = true
	}

	x.schema = schema
	return schema, updated, nil
}
