package relstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/storage"
)

// Collection adapts the generic gateway client to the storage contract for one
// entity kind. Action names mirror the CRUD verbs 1:1, namespaced per entity
// (getAssets, addAsset, updateAssets, ...).
type Collection[E storage.Entity] struct {
	cli      *Client
	tenantID string
	cfg      storage.RelationalConfig
	singular string // e.g. "Asset"
	plural   string // e.g. "Assets"
	codec    Codec
	log      *zap.Logger
}

func NewCollection[E storage.Entity](cli *Client, tenantID string, cfg storage.RelationalConfig, singular, plural string, codec Codec, log *zap.Logger) *Collection[E] {
	return &Collection[E]{
		cli:      cli,
		tenantID: tenantID,
		cfg:      cfg,
		singular: singular,
		plural:   plural,
		codec:    codec,
		log:      log,
	}
}

// Codec exposes the collection's serialization boundary to entity-specific
// actions that need to encode log entries for the wire.
func (c *Collection[E]) Codec() Codec { return c.codec }

// List returns all rows of the tenant's table. A table that does not exist yet
// means the tenant was never provisioned for this collection; that case is
// logged and swallowed as an empty result rather than surfaced.
func (c *Collection[E]) List(ctx context.Context) ([]E, error) {
	var rows []map[string]json.RawMessage
	err := c.cli.Call(ctx, "get"+c.plural, c.tenantID, c.cfg, nil, &rows)
	if errors.Is(err, storage.ErrNotProvisioned) {
		c.log.Warn("collection not provisioned, returning empty result",
			zap.String("tenant_id", c.tenantID), zap.String("kind", c.plural))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entities := make([]E, 0, len(rows))
	for _, row := range rows {
		var e E
		if err := c.codec.Decode(row, &e); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", c.singular, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *Collection[E]) Get(ctx context.Context, id uuid.UUID) (*E, error) {
	var row map[string]json.RawMessage
	if err := c.cli.Call(ctx, "get"+c.singular, c.tenantID, c.cfg, map[string]any{"id": id}, &row); err != nil {
		return nil, err
	}

	var e E
	if err := c.codec.Decode(row, &e); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", c.singular, err)
	}
	return &e, nil
}

func (c *Collection[E]) Add(ctx context.Context, entity E) error {
	if entity.Tenant() != c.tenantID {
		return storage.ErrTenantMismatch
	}
	row, err := c.codec.Encode(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.singular, err)
	}
	return c.cli.Call(ctx, "add"+c.singular, c.tenantID, c.cfg, row, nil)
}

func (c *Collection[E]) AddBatch(ctx context.Context, entities []E) error {
	items := make([]map[string]any, 0, len(entities))
	for _, entity := range entities {
		if entity.Tenant() != c.tenantID {
			return storage.ErrTenantMismatch
		}
		row, err := c.codec.Encode(entity)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.singular, err)
		}
		items = append(items, row)
	}
	return c.cli.Call(ctx, "add"+c.plural, c.tenantID, c.cfg, map[string]any{"items": items}, nil)
}

// Update performs a full row replace, unlike the document backend's merge.
func (c *Collection[E]) Update(ctx context.Context, entity E) error {
	if entity.Tenant() != c.tenantID {
		return storage.ErrTenantMismatch
	}
	row, err := c.codec.Encode(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.singular, err)
	}
	return c.cli.Call(ctx, "update"+c.singular, c.tenantID, c.cfg, row, nil)
}

func (c *Collection[E]) UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]any) error {
	encoded, err := c.codec.EncodeFields(fields)
	if err != nil {
		return err
	}
	return c.cli.Call(ctx, "update"+c.plural, c.tenantID, c.cfg, map[string]any{
		"ids":    ids,
		"fields": encoded,
	}, nil)
}

func (c *Collection[E]) Delete(ctx context.Context, id uuid.UUID) error {
	return c.cli.Call(ctx, "delete"+c.singular, c.tenantID, c.cfg, map[string]any{"id": id}, nil)
}

func (c *Collection[E]) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	return c.cli.Call(ctx, "delete"+c.plural, c.tenantID, c.cfg, map[string]any{"ids": ids}, nil)
}

// Do invokes an entity-specific named action (issueConsumable,
// addAssetComment, ...) that the gateway executes server-side in one step.
func (c *Collection[E]) Do(ctx context.Context, action string, payload map[string]any) error {
	return c.cli.Call(ctx, action, c.tenantID, c.cfg, payload, nil)
}
