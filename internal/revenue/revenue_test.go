package revenue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/invoice-dashboard/internal/db/dbtest"
)

func TestInsertIfAbsent_MonthIsUnique(t *testing.T) {
	ctx := context.Background()
	fake := dbtest.New()
	repo := NewRepository(fake)
	require.NoError(t, repo.EnsureTable(ctx))

	require.NoError(t, repo.InsertIfAbsent(ctx, Record{Month: "Jan", Revenue: 2000}))
	require.NoError(t, repo.InsertIfAbsent(ctx, Record{Month: "Jan", Revenue: 9999}))
	require.NoError(t, repo.InsertIfAbsent(ctx, Record{Month: "Feb", Revenue: 1800}))

	assert.Equal(t, 2, fake.Count("revenue"))
	assert.Equal(t, []any{"Jan", 2000}, fake.Row("revenue", "Jan"))
}
