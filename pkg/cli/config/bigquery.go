package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

type BigQuery struct {
	projectID                 types.GoogleProjectID
	datasetID                 types.BQDatasetID
	tableID                   types.BQTableID
	impersonateServiceAccount string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID of the audit log",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("OCTORELAY_BIGQUERY_PROJECT_ID"),
			Destination: (*string)(&x.projectID),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID of the audit log",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("OCTORELAY_BIGQUERY_DATASET_ID"),
			Destination: (*string)(&x.datasetID),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID of the audit log",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("OCTORELAY_BIGQUERY_TABLE_ID"),
			Value:       "lifecycle_events",
			Destination: (*string)(&x.tableID),
		},
		&cli.StringFlag{
			Name:        "bigquery-impersonate-service-account",
			Usage:       "Service account to impersonate for BigQuery",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("OCTORELAY_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT"),
			Destination: &x.impersonateServiceAccount,
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != ""
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("projectID", x.projectID),
		slog.Any("datasetID", x.datasetID),
		slog.Any("tableID", x.tableID),
		slog.String("impersonateServiceAccount", x.impersonateServiceAccount),
	)
}

// NewAuditLog returns nil when the audit log is not configured.
func (x *BigQuery) NewAuditLog(ctx context.Context) (*bq.AuditLog, error) {
	if !x.Enabled() {
		return nil, nil
	}

	var options []option.ClientOption
	if x.impersonateServiceAccount != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: x.impersonateServiceAccount,
			Scopes: []string{
				"https://www.googleapis.com/auth/bigquery",
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create impersonated token source",
				goerr.V("serviceAccount", x.impersonateServiceAccount))
		}
		options = append(options, option.WithTokenSource(ts))
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID, options...)
	if err != nil {
		return nil, err
	}
	return bq.NewAuditLog(client), nil
}
