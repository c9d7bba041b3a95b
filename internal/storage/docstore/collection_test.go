package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

func newTestCollection(t *testing.T) *Collection[models.Asset] {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCollection[models.Asset](rdb, "acme", "assets", zap.NewNop())
}

func newAsset(name string) models.Asset {
	return models.Asset{
		ID:        uuid.New(),
		TenantID:  "acme",
		Name:      name,
		Category:  "laptop",
		Status:    models.AssetStatusAvailable,
		AuditLog:  []models.AuditEntry{models.NewAuditEntry(models.AuditActionCreated, "tester", "")},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestAddGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a := newAsset("ThinkPad X1")
	a.Comments = []models.Comment{{ID: uuid.New(), Text: "needs dock", Date: time.Now().UTC()}}
	require.NoError(t, col.Add(ctx, a))

	got, err := col.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "needs dock", got.Comments[0].Text)
	require.Len(t, got.AuditLog, 1)
	assert.Equal(t, models.AuditActionCreated, got.AuditLog[0].Action)
}

func TestGetNotFound(t *testing.T) {
	col := newTestCollection(t)
	_, err := col.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddRejectsForeignTenant(t *testing.T) {
	col := newTestCollection(t)
	a := newAsset("rogue")
	a.TenantID = "globex"
	assert.ErrorIs(t, col.Add(context.Background(), a), storage.ErrTenantMismatch)
}

func TestListReturnsAllDocuments(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	require.NoError(t, col.AddBatch(ctx, []models.Asset{newAsset("a"), newAsset("b"), newAsset("c")}))

	all, err := col.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateMergePreservesAbsentFields(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	loc := "HQ floor 3"
	a := newAsset("printer")
	a.Location = &loc
	require.NoError(t, col.Add(ctx, a))

	// Supplied entity omits Location (nil + omitempty), so the stored value
	// must survive the merge.
	updated := a
	updated.Location = nil
	updated.Name = "printer (east wing)"
	require.NoError(t, col.Update(ctx, updated))

	got, err := col.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "printer (east wing)", got.Name)
	require.NotNil(t, got.Location)
	assert.Equal(t, loc, *got.Location)
}

func TestUpdateBatchTouchesOnlyListedDocumentsAndFields(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a, b, other := newAsset("a"), newAsset("b"), newAsset("other")
	for _, e := range []models.Asset{a, b, other} {
		require.NoError(t, col.Add(ctx, e))
	}

	err := col.UpdateBatch(ctx, []uuid.UUID{a.ID, b.ID}, map[string]any{"status": models.AssetStatusRetired})
	require.NoError(t, err)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := col.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.AssetStatusRetired, got.Status)
		assert.Equal(t, "laptop", got.Category) // untouched field
	}

	got, err := col.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusAvailable, got.Status)
}

func TestUpdateBatchSkipsIdentityFields(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a := newAsset("a")
	require.NoError(t, col.Add(ctx, a))

	err := col.UpdateBatch(ctx, []uuid.UUID{a.ID}, map[string]any{
		"id":        uuid.New(),
		"tenant_id": "globex",
		"name":      "renamed",
	})
	require.NoError(t, err)

	got, err := col.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "acme", got.TenantID)
	assert.Equal(t, "renamed", got.Name)

	err = col.UpdateBatch(ctx, []uuid.UUID{a.ID}, map[string]any{"id": uuid.New()})
	require.Error(t, err)
}

func TestMutateAppendsWithoutLosingDocument(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a := newAsset("server")
	require.NoError(t, col.Add(ctx, a))

	err := col.Mutate(ctx, a.ID, func(e *models.Asset) error {
		e.AuditLog = append(e.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, "tester", "renamed"))
		return nil
	})
	require.NoError(t, err)

	got, err := col.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.AuditLog, 2)
	assert.Equal(t, models.AuditActionUpdated, got.AuditLog[1].Action)
}

func TestMutateAbortsOnFnError(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a := newAsset("switch")
	require.NoError(t, col.Add(ctx, a))

	err := col.Mutate(ctx, a.ID, func(e *models.Asset) error {
		e.Name = "should not persist"
		return storage.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	got, err := col.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "switch", got.Name)
}

func TestDeleteRemovesDocumentAndIndex(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)

	a := newAsset("doomed")
	require.NoError(t, col.Add(ctx, a))
	require.NoError(t, col.Delete(ctx, a.ID))

	_, err := col.Get(ctx, a.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := col.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
