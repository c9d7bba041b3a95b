package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

// ConsumableActions are the backend-specific stock operations. Issue checks
// and decrements the counter atomically; Revoke flips the entry to Reversed
// and restores the quantity. Neither removes issue-log entries.
type ConsumableActions interface {
	Issue(ctx context.Context, id uuid.UUID, entry models.IssueEntry, actor string) error
	Revoke(ctx context.Context, id uuid.UUID, entryID uuid.UUID, actor string) error
}

type ConsumableRepo struct {
	Repo[models.Consumable]
	actions ConsumableActions
}

func NewConsumableRepo(store storage.Store[models.Consumable], actions ConsumableActions, tenantID string, pub events.Publisher, log *zap.Logger) *ConsumableRepo {
	return &ConsumableRepo{
		Repo:    newRepo(store, tenantID, "consumables", pub, log),
		actions: actions,
	}
}

func (r *ConsumableRepo) Add(ctx context.Context, c *models.Consumable, actor string) error {
	if c.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	stampNew(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	c.AuditLog = append(c.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *c); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, c.ID, actor)
	return nil
}

func (r *ConsumableRepo) AddBatch(ctx context.Context, consumables []models.Consumable, actor string) error {
	for i := range consumables {
		if consumables[i].Quantity < 0 {
			return fmt.Errorf("quantity must not be negative")
		}
		stampNew(&consumables[i].ID, &consumables[i].CreatedAt, &consumables[i].UpdatedAt)
		consumables[i].AuditLog = append(consumables[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, consumables); err != nil {
		return err
	}
	for i := range consumables {
		r.publish(ctx, events.EventEntityCreated, consumables[i].ID, actor)
	}
	return nil
}

func (r *ConsumableRepo) Update(ctx context.Context, c *models.Consumable, actor string) error {
	c.UpdatedAt = time.Now().UTC()
	c.AuditLog = append(c.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *c); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, c.ID, actor)
	return nil
}

// Issue hands out quantity units to an employee. The stock check and the
// decrement happen atomically in the backend; on ErrInsufficientStock the
// consumable is left untouched.
func (r *ConsumableRepo) Issue(ctx context.Context, id uuid.UUID, quantity int, employeeID uuid.UUID, actor string) error {
	if quantity <= 0 {
		return fmt.Errorf("issue quantity must be positive")
	}
	entry := models.IssueEntry{
		ID:         uuid.New(),
		Quantity:   quantity,
		Date:       time.Now().UTC(),
		EmployeeID: employeeID,
		Status:     models.IssueStatusIssued,
	}
	if err := r.actions.Issue(ctx, id, entry, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}

// Revoke reverses a previous issue: the entry stays in the log with status
// Reversed and its quantity returns to stock.
func (r *ConsumableRepo) Revoke(ctx context.Context, id, entryID uuid.UUID, actor string) error {
	if err := r.actions.Revoke(ctx, id, entryID, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}

// StockSummary is a per-consumable stock report line.
type StockSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	Outstanding int       `json:"outstanding"`
	BelowMin    bool      `json:"below_min"`
}

// StockSummary lists current stock levels, flagging items at or below their
// minimum quantity.
func (r *ConsumableRepo) StockSummary(ctx context.Context) ([]StockSummary, error) {
	consumables, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StockSummary, 0, len(consumables))
	for _, c := range consumables {
		out = append(out, StockSummary{
			ID:          c.ID,
			Name:        c.Name,
			Quantity:    c.Quantity,
			MinQuantity: c.MinQuantity,
			Outstanding: c.OutstandingIssued(),
			BelowMin:    c.Quantity <= c.MinQuantity,
		})
	}
	return out, nil
}
