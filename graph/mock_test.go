package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productListParams(ids ...string) map[string]any {
	products := make([]any, 0, len(ids))
	for _, id := range ids {
		products = append(products, map[string]any{
			"id":          id,
			"name":        "Item " + id,
			"description": "",
			"price":       "9.99",
		})
	}
	return map[string]any{"products": products}
}

func TestMockStore_CommitMakesStateVisible(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.Run(ctx, stmtUpsertProducts, productListParams("product_0"))
	require.NoError(t, err)
	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)

	// Open transaction state is not visible through the store.
	assert.Equal(t, 0, store.ProductCount())
	assert.Equal(t, 0, store.CategoryCount())

	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, 1, store.ProductCount())
	assert.Equal(t, 1, store.CategoryCount())
	assert.Equal(t, 1, store.CommitCount())

	props, ok := store.Product("product_0")
	require.True(t, ok)
	assert.Equal(t, "Item product_0", props.Name)
	assert.Equal(t, "9.99", props.Price)
}

func TestMockStore_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.Run(ctx, stmtUpsertProducts, productListParams("product_0"))
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, 0, store.ProductCount())
	assert.Equal(t, 1, store.RollbackCount())
	assert.Equal(t, 0, store.CommitCount())
}

func TestMockStore_MergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	first, err := tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.NodesCreated)

	second, err := tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)
	assert.Zero(t, second.NodesCreated)
	assert.Zero(t, second.PropertiesSet)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, store.CategoryCount())
}

func TestMockStore_UpsertProductsCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	created, err := tx.Run(ctx, stmtUpsertProducts, productListParams("product_0", "product_1"))
	require.NoError(t, err)
	assert.Equal(t, 2, created.NodesCreated)
	assert.Equal(t, 8, created.PropertiesSet)

	// Matching an existing node rewrites properties without creating.
	matched, err := tx.Run(ctx, stmtUpsertProducts, productListParams("product_0"))
	require.NoError(t, err)
	assert.Zero(t, matched.NodesCreated)
	assert.Equal(t, 3, matched.PropertiesSet)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 2, store.ProductCount())
}

func TestMockStore_RelateRequiresBothNodes(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	// MATCH with no product behaves like the real statement: no edge, no error.
	counters, err := tx.Run(ctx, stmtRelateCategory, map[string]any{
		"product_id":    "product_0",
		"category_name": "Toys",
	})
	require.NoError(t, err)
	assert.Zero(t, counters.RelationshipsCreated)

	_, err = tx.Run(ctx, stmtUpsertProducts, productListParams("product_0"))
	require.NoError(t, err)
	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)

	counters, err = tx.Run(ctx, stmtRelateCategory, map[string]any{
		"product_id":    "product_0",
		"category_name": "Toys",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, counters.RelationshipsCreated)

	require.NoError(t, tx.Commit(ctx))
	assert.True(t, store.HasBelongsTo("product_0", "Toys"))
	assert.Equal(t, 1, store.RelationshipCount())
}

func TestMockStore_SpecificationEdges(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.Run(ctx, stmtUpsertProducts, productListParams("product_0"))
	require.NoError(t, err)
	_, err = tx.Run(ctx, stmtUpsertSpecification, map[string]any{"key": "color", "value": "red"})
	require.NoError(t, err)

	counters, err := tx.Run(ctx, stmtRelateSpecification, map[string]any{
		"product_id": "product_0",
		"spec_key":   "color",
		"spec_value": "red",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, counters.RelationshipsCreated)

	require.NoError(t, tx.Commit(ctx))
	assert.True(t, store.HasSpecification("color", "red"))
	assert.True(t, store.HasSpecificationEdge("product_0", "color", "red"))
}

func TestMockStore_UnknownStatementFails(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Run(ctx, "MATCH (n) RETURN n", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatement)
}

func TestMockStore_FailOnStatement(t *testing.T) {
	ctx := context.Background()
	injected := errors.New("boom")

	store := NewMockStore()
	store.FailOnStatement = 2
	store.FailWith = injected

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)

	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Games"})
	assert.ErrorIs(t, err, injected)
}

func TestMockStore_CommitErrLeavesTransactionOpen(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	store.CommitErr = errors.New("connection reset")

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)

	err = tx.Commit(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatement)

	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 0, store.CategoryCount())
	assert.Equal(t, 1, store.RollbackCount())
	assert.Equal(t, 0, store.CommitCount())
}

func TestMockStore_FinishedTransactionRejectsRun(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	assert.ErrorIs(t, err, ErrStatement)

	// Finishing twice is a no-op.
	assert.NoError(t, tx.Commit(ctx))
	assert.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 1, store.CommitCount())
	assert.Equal(t, 0, store.RollbackCount())
}

func TestMockStore_ClosedStoreRejectsBegin(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	require.NoError(t, store.Close(ctx))

	_, err := store.BeginTx(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMockStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	store.FailOnStatement = 5

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Run(ctx, stmtUpsertCategory, map[string]any{"name": "Toys"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	store.Reset()

	assert.Equal(t, 0, store.CategoryCount())
	assert.Equal(t, 0, store.StatementCount())
	assert.Equal(t, 0, store.BeginCount())
	assert.Equal(t, 0, store.CommitCount())
	assert.Zero(t, store.FailOnStatement)
}
