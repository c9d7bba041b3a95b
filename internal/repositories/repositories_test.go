package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

func newTestRepos(t *testing.T) *Repos {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := storage.TenantConfig{TenantID: "acme", Provider: storage.ProviderDocument}
	repos, err := New(cfg, rdb, nil, nil, zap.NewNop())
	require.NoError(t, err)
	return repos
}

func addConsumable(t *testing.T, repos *Repos, quantity int) *models.Consumable {
	t.Helper()
	c := &models.Consumable{
		TenantID: "acme",
		Name:     "USB-C cable",
		Quantity: quantity,
	}
	require.NoError(t, repos.Consumables.Add(context.Background(), c, "tester"))
	return c
}

func TestAssetAddStampsAndAudits(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Asset{TenantID: "acme", Name: "ThinkPad X1", Category: "laptop"}
	require.NoError(t, repos.Assets.Add(ctx, a, "alice"))

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, models.AssetStatusAvailable, a.Status)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := repos.Assets.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.AuditLog, 1)
	assert.Equal(t, models.AuditActionCreated, got.AuditLog[0].Action)
	assert.Equal(t, "alice", got.AuditLog[0].Actor)
}

func TestAssetUpdateAppendsAudit(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Asset{TenantID: "acme", Name: "ThinkPad X1", Category: "laptop"}
	require.NoError(t, repos.Assets.Add(ctx, a, "alice"))

	a.Status = models.AssetStatusDeployed
	require.NoError(t, repos.Assets.Update(ctx, a, "bob"))

	got, err := repos.Assets.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusDeployed, got.Status)
	require.Len(t, got.AuditLog, 2)
	assert.Equal(t, models.AuditActionUpdated, got.AuditLog[1].Action)
}

func TestAssetUpdateRejectsInvalidTransition(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Asset{TenantID: "acme", Name: "ThinkPad X1", Category: "laptop"}
	require.NoError(t, repos.Assets.Add(ctx, a, "alice"))

	a.Status = models.AssetStatusDisposed
	err := repos.Assets.Update(ctx, a, "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	got, err := repos.Assets.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusAvailable, got.Status)
	assert.Len(t, got.AuditLog, 1)

	got.Status = models.AssetStatusRetired
	require.NoError(t, repos.Assets.Update(ctx, got, "bob"))
	got.Status = models.AssetStatusDisposed
	require.NoError(t, repos.Assets.Update(ctx, got, "bob"))
}

func TestAssetAddComment(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Asset{TenantID: "acme", Name: "ThinkPad X1", Category: "laptop"}
	require.NoError(t, repos.Assets.Add(ctx, a, "alice"))
	require.NoError(t, repos.Assets.AddComment(ctx, a.ID, "screen flickers", "bob"))

	got, err := repos.Assets.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "screen flickers", got.Comments[0].Text)
	assert.Equal(t, "bob", got.Comments[0].Author)
	require.Len(t, got.AuditLog, 2)
	assert.Equal(t, models.AuditActionCommented, got.AuditLog[1].Action)
}

func TestConsumableIssueDecrementsStock(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	c := addConsumable(t, repos, 10)

	employee := uuid.New()
	require.NoError(t, repos.Consumables.Issue(ctx, c.ID, 4, employee, "alice"))

	got, err := repos.Consumables.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
	require.Len(t, got.IssueLog, 1)
	assert.Equal(t, 4, got.IssueLog[0].Quantity)
	assert.Equal(t, models.IssueStatusIssued, got.IssueLog[0].Status)
	assert.Equal(t, employee, got.IssueLog[0].EmployeeID)
}

func TestConsumableIssueInsufficientStock(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	c := addConsumable(t, repos, 10)

	require.NoError(t, repos.Consumables.Issue(ctx, c.ID, 4, uuid.New(), "alice"))
	err := repos.Consumables.Issue(ctx, c.ID, 8, uuid.New(), "alice")
	assert.ErrorIs(t, err, storage.ErrInsufficientStock)

	got, err := repos.Consumables.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
	assert.Len(t, got.IssueLog, 1)
}

func TestConsumableRevokeRestoresStock(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	c := addConsumable(t, repos, 10)

	require.NoError(t, repos.Consumables.Issue(ctx, c.ID, 4, uuid.New(), "alice"))
	got, err := repos.Consumables.Get(ctx, c.ID)
	require.NoError(t, err)
	entryID := got.IssueLog[0].ID

	require.NoError(t, repos.Consumables.Revoke(ctx, c.ID, entryID, "alice"))

	got, err = repos.Consumables.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	require.Len(t, got.IssueLog, 1)
	assert.Equal(t, models.IssueStatusReversed, got.IssueLog[0].Status)

	err = repos.Consumables.Revoke(ctx, c.ID, entryID, "alice")
	assert.Error(t, err)
}

func TestConsumableSummary(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	low := &models.Consumable{TenantID: "acme", Name: "AA battery", Quantity: 2, MinQuantity: 5}
	require.NoError(t, repos.Consumables.Add(ctx, low, "tester"))
	ok := &models.Consumable{TenantID: "acme", Name: "HDMI cable", Quantity: 9, MinQuantity: 2}
	require.NoError(t, repos.Consumables.Add(ctx, ok, "tester"))

	summary, err := repos.Consumables.StockSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	byName := map[string]StockSummary{}
	for _, s := range summary {
		byName[s.Name] = s
	}
	assert.True(t, byName["AA battery"].BelowMin)
	assert.False(t, byName["HDMI cable"].BelowMin)
}

func TestSoftwareSeatLimit(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	s := &models.Software{TenantID: "acme", Name: "IDE Pro", Seats: 1}
	require.NoError(t, repos.Software.Add(ctx, s, "tester"))

	first := uuid.New()
	require.NoError(t, repos.Software.Assign(ctx, s.ID, first, "alice"))
	err := repos.Software.Assign(ctx, s.ID, uuid.New(), "alice")
	assert.ErrorIs(t, err, storage.ErrNoSeats)

	require.NoError(t, repos.Software.Unassign(ctx, s.ID, first, "alice"))
	got, err := repos.Software.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AssignedTo)
	assert.Equal(t, 1, got.SeatsLeft())
}

func TestAwardLockBlocksEditAndDelete(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Award{TenantID: "acme", Title: "Employee of the month"}
	require.NoError(t, repos.Awards.Add(ctx, a, "tester"))
	require.NoError(t, repos.Awards.Lock(ctx, a.ID, "admin"))

	a.Title = "Changed"
	assert.ErrorIs(t, repos.Awards.Update(ctx, a, "tester"), storage.ErrLocked)
	assert.ErrorIs(t, repos.Awards.Delete(ctx, a.ID), storage.ErrLocked)

	require.NoError(t, repos.Awards.Unlock(ctx, a.ID, "admin"))
	got, err := repos.Awards.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NoError(t, repos.Awards.Update(ctx, got, "tester"))
	require.NoError(t, repos.Awards.Delete(ctx, a.ID))
}

func TestAwardLockBlocksBatchOps(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	a := &models.Award{TenantID: "acme", Title: "Employee of the month"}
	require.NoError(t, repos.Awards.Add(ctx, a, "tester"))
	require.NoError(t, repos.Awards.Lock(ctx, a.ID, "admin"))

	err := repos.Awards.DeleteBatch(ctx, []uuid.UUID{a.ID})
	assert.ErrorIs(t, err, storage.ErrLocked)
	_, err = repos.Awards.Get(ctx, a.ID)
	require.NoError(t, err)

	err = repos.Awards.UpdateBatch(ctx, []uuid.UUID{a.ID}, map[string]any{"title": "renamed"})
	assert.ErrorIs(t, err, storage.ErrLocked)

	// The lock flag itself never moves through a partial update, locked or not.
	err = repos.Awards.UpdateBatch(ctx, []uuid.UUID{a.ID}, map[string]any{"is_locked": false})
	require.Error(t, err)

	got, err := repos.Awards.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsLocked)
	assert.Equal(t, "Employee of the month", got.Title)
}

func TestVendorAndUserCrud(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	v := &models.Vendor{TenantID: "acme", Name: "Initech", Products: []string{"laptops"}}
	require.NoError(t, repos.Vendors.Add(ctx, v, "tester"))
	vendors, err := repos.Vendors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)

	u := &models.User{TenantID: "acme", Email: "bob@initech.test"}
	require.NoError(t, repos.Users.Add(ctx, u, "tester"))
	got, err := repos.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, got.Role)
}
