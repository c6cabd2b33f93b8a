package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/types"
	"github.com/secmon-lab/octorelay/pkg/repository/postgres"
	"github.com/secmon-lab/octorelay/pkg/repository/testhelper"
	"github.com/secmon-lab/octorelay/pkg/utils/testutil"
)

func TestPostgresRepository(t *testing.T) {
	dbURL := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_URL")

	ctx := context.Background()
	schema := fmt.Sprintf("octorelay_test_%d", time.Now().Unix())
	repo, err := postgres.New(ctx, dbURL, schema)
	gt.NoError(t, err)
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	gt.NoError(t, repo.Migrate(ctx))
	// migration is repeatable
	gt.NoError(t, repo.Migrate(ctx))

	testhelper.TestAll(t, repo)
}

func TestInvalidSchemaName(t *testing.T) {
	testCases := []struct {
		name   string
		schema string
	}{
		{name: "quote", schema: `public"; DROP TABLE x; --`},
		{name: "dot", schema: "a.b"},
		{name: "uppercase", schema: "Public"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := postgres.NewWithDB(nil, tc.schema)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrInvalidOption))
		})
	}
}
