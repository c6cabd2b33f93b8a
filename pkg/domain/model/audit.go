package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is the flattened, schema-inferable form of a handled event.
type AuditRecord struct {
	ID             string    `json:"id" bigquery:"id"`
	Timestamp      time.Time `json:"timestamp" bigquery:"timestamp"`
	RequestID      string    `json:"request_id" bigquery:"request_id"`
	Kind           string    `json:"kind" bigquery:"kind"`
	InstallationID int64     `json:"installation_id" bigquery:"installation_id"`
	Transition     string    `json:"transition" bigquery:"transition"`
	Repositories   []string  `json:"repositories" bigquery:"repositories"`
	Notified       int64     `json:"notified" bigquery:"notified"`
	Failed         int64     `json:"failed" bigquery:"failed"`
	NoOp           bool      `json:"noop" bigquery:"noop"`
	Error          string    `json:"error" bigquery:"error"`
}

func NewAuditRecord(ts time.Time, requestID string, ev LifecycleEvent, result *ReconcileResult, err error) *AuditRecord {
	record := &AuditRecord{
		ID:             uuid.NewString(),
		Timestamp:      ts,
		RequestID:      requestID,
		Kind:           string(ev.Kind()),
		InstallationID: int64(ev.InstallationID()),
	}
	if result != nil {
		record.Transition = string(result.Transition)
		record.NoOp = result.NoOp
		record.Notified = int64(result.Delivered())
		record.Failed = int64(len(result.DeliveryFailures) + len(result.LookupFailures))
		for _, repo := range result.Delta {
			record.Repositories = append(record.Repositories, repo.String())
		}
	}
	if err != nil {
		record.Error = err.Error()
	}
	return record
}

// AuditRawRecord is the insert form of AuditRecord. The storage write API
// takes TIMESTAMP columns as microseconds.
type AuditRawRecord struct {
	AuditRecord
	Timestamp int64 `json:"timestamp" bigquery:"timestamp"`
}

func (x *AuditRecord) Raw() *AuditRawRecord {
	return &AuditRawRecord{
		AuditRecord: *x,
		Timestamp:   x.Timestamp.UnixMicro(),
	}
}
