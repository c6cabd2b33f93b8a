package bq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/mock"
	"github.com/secmon-lab/octorelay/pkg/domain/model"
	"github.com/secmon-lab/octorelay/pkg/infra/bq"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newRecord() *model.AuditRecord {
	return &model.AuditRecord{
		ID:             "audit-1",
		Timestamp:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Kind:           string(model.EventInstallationCreated),
		InstallationID: 1,
		Repositories:   []string{"octo/repo"},
	}
}

func TestAuditLogPut(t *testing.T) {
	ctx := context.Background()

	t.Run("creates table on first put and inserts raw record", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				return nil
			},
		}
		auditLog := bq.NewAuditLog(mockBQ)

		gt.NoError(t, auditLog.Put(ctx, newRecord()))
		gt.NoError(t, auditLog.Put(ctx, newRecord()))

		// table preparation happens once
		gt.V(t, len(mockBQ.GetMetadataCalls())).Equal(1)
		gt.V(t, len(mockBQ.CreateTableCalls())).Equal(1)
		gt.V(t, len(mockBQ.InsertCalls())).Equal(2)

		raw, ok := mockBQ.InsertCalls()[0].Data.(*model.AuditRawRecord)
		gt.True(t, ok)
		gt.V(t, raw.Timestamp).Equal(newRecord().Timestamp.UnixMicro())
		gt.V(t, raw.Kind).Equal(string(model.EventInstallationCreated))
	})

	t.Run("merges schema of an existing table", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{{Name: "id", Type: bigquery.StringFieldType}},
					ETag:   "etag-1",
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				return nil
			},
		}
		auditLog := bq.NewAuditLog(mockBQ)

		gt.NoError(t, auditLog.Put(ctx, newRecord()))
		gt.V(t, len(mockBQ.UpdateTableCalls())).Equal(1)
		gt.V(t, mockBQ.UpdateTableCalls()[0].ETag).Equal("etag-1")
	})

	t.Run("retries insert while schema update propagates", func(t *testing.T) {
		var attempts int
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{{Name: "id", Type: bigquery.StringFieldType}},
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				attempts++
				if attempts < 3 {
					return status.Error(codes.InvalidArgument, "Input schema has more fields than BigQuery schema, extra fields: 'kind'")
				}
				return nil
			},
		}
		auditLog := bq.NewAuditLog(mockBQ, bq.WithRetryWait(time.Millisecond))

		gt.NoError(t, auditLog.Put(ctx, newRecord()))
		gt.V(t, attempts).Equal(3)
	})

	t.Run("insert error is returned", func(t *testing.T) {
		mockBQ := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				return errors.New("permission denied")
			},
		}
		auditLog := bq.NewAuditLog(mockBQ)

		gt.Error(t, auditLog.Put(ctx, newRecord()))
		gt.V(t, len(mockBQ.InsertCalls())).Equal(1)
	})
}
