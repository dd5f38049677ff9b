package invoices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/invoice-dashboard/internal/db/dbtest"
)

func TestInsertIfAbsent_WithID(t *testing.T) {
	ctx := context.Background()
	fake := dbtest.New()
	repo := NewRepository(fake)
	require.NoError(t, repo.EnsureTable(ctx))

	inv := Invoice{ID: "i1", CustomerID: "c1", Amount: 15795, Status: "pending", Date: "2022-12-06"}
	require.NoError(t, repo.InsertIfAbsent(ctx, inv))
	require.NoError(t, repo.InsertIfAbsent(ctx, inv))

	assert.Equal(t, 1, fake.Count("invoices"))
	assert.Equal(t, []any{"i1", "c1", 15795, "pending", "2022-12-06"}, fake.Row("invoices", "i1"))
}

func TestInsertIfAbsent_GeneratedID(t *testing.T) {
	ctx := context.Background()
	fake := dbtest.New()
	repo := NewRepository(fake)
	require.NoError(t, repo.EnsureTable(ctx))

	inv := Invoice{CustomerID: "c1", Amount: 500, Status: "paid", Date: "2023-01-01"}
	require.NoError(t, repo.InsertIfAbsent(ctx, inv))
	require.NoError(t, repo.InsertIfAbsent(ctx, inv))

	assert.Equal(t, 2, fake.Count("invoices"))
}
