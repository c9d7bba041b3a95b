// Package docstore is the document-backend implementation of the storage
// contract: one JSON document per entity in Redis, keyed under the tenant's
// namespace, plus a per-collection index set of ids.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/storage"
)

// maxTxRetries bounds the optimistic WATCH loop on read-modify-write paths.
const maxTxRetries = 5

type Collection[E storage.Entity] struct {
	rdb      *redis.Client
	tenantID string
	kind     string
	log      *zap.Logger
}

func NewCollection[E storage.Entity](rdb *redis.Client, tenantID, kind string, log *zap.Logger) *Collection[E] {
	return &Collection[E]{rdb: rdb, tenantID: tenantID, kind: kind, log: log}
}

func (c *Collection[E]) docKey(id uuid.UUID) string {
	return fmt.Sprintf("tenants:%s:%s:%s", c.tenantID, c.kind, id)
}

func (c *Collection[E]) indexKey() string {
	return fmt.Sprintf("tenants:%s:%s", c.tenantID, c.kind)
}

func (c *Collection[E]) List(ctx context.Context) ([]E, error) {
	ids, err := c.rdb.SMembers(ctx, c.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("tenants:%s:%s:%s", c.tenantID, c.kind, id)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}

	entities := make([]E, 0, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// Index member without a document: deleted concurrently.
			c.log.Debug("stale index entry", zap.String("kind", c.kind), zap.String("id", ids[i]))
			continue
		}
		var e E
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", c.kind, ids[i], err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *Collection[E]) Get(ctx context.Context, id uuid.UUID) (*E, error) {
	raw, err := c.rdb.Get(ctx, c.docKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", c.kind, id, err)
	}

	var e E
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", c.kind, id, err)
	}
	return &e, nil
}

func (c *Collection[E]) Add(ctx context.Context, entity E) error {
	if entity.Tenant() != c.tenantID {
		return storage.ErrTenantMismatch
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.kind, err)
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.docKey(entity.EntityID()), data, 0)
		pipe.SAdd(ctx, c.indexKey(), entity.EntityID().String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("add %s %s: %w", c.kind, entity.EntityID(), err)
	}
	return nil
}

// AddBatch writes each entity independently and concurrently. There is no
// transaction across items: failures do not roll back the writes that
// succeeded, and the returned error joins whatever went wrong per item.
func (c *Collection[E]) AddBatch(ctx context.Context, entities []E) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, entity := range entities {
		wg.Add(1)
		go func(e E) {
			defer wg.Done()
			if err := c.Add(ctx, e); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(entity)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Update merges the supplied entity into the stored document: top-level fields
// absent from the entity's JSON form keep their stored value. The merge runs
// inside an optimistic WATCH transaction.
func (c *Collection[E]) Update(ctx context.Context, entity E) error {
	if entity.Tenant() != c.tenantID {
		return storage.ErrTenantMismatch
	}

	supplied, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.kind, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(supplied, &fields); err != nil {
		return fmt.Errorf("encode %s: %w", c.kind, err)
	}

	return c.merge(ctx, entity.EntityID(), fields)
}

// UpdateBatch applies the same partial field set to each listed document,
// leaving every other field untouched. Items are updated concurrently.
func (c *Collection[E]) UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]any) error {
	raw := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		// Identity fields never move through a partial update; the relational
		// batch handler skips the same columns.
		if k == "id" || k == "tenant_id" {
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode field %s: %w", k, err)
		}
		raw[k] = data
	}
	if len(raw) == 0 {
		return fmt.Errorf("no updatable fields")
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := c.merge(ctx, id, raw); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s %s: %w", c.kind, id, err))
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (c *Collection[E]) merge(ctx context.Context, id uuid.UUID, fields map[string]json.RawMessage) error {
	key := c.docKey(id)

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				return storage.ErrNotFound
			}
			if err != nil {
				return err
			}

			var doc map[string]json.RawMessage
			if err := json.Unmarshal([]byte(current), &doc); err != nil {
				return err
			}
			for k, v := range fields {
				doc[k] = v
			}

			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return storage.ErrConflict
}

// Mutate loads the entity, applies fn, and writes the result back inside an
// optimistic WATCH transaction, retrying when a concurrent writer touched the
// document first. An error from fn aborts without writing.
func (c *Collection[E]) Mutate(ctx context.Context, id uuid.UUID, fn func(*E) error) error {
	key := c.docKey(id)

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				return storage.ErrNotFound
			}
			if err != nil {
				return err
			}

			var e E
			if err := json.Unmarshal([]byte(current), &e); err != nil {
				return err
			}
			if err := fn(&e); err != nil {
				return err
			}

			data, err := json.Marshal(e)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			c.log.Debug("optimistic tx lost, retrying",
				zap.String("kind", c.kind), zap.String("id", id.String()), zap.Int("attempt", attempt+1))
			continue
		}
		return err
	}
	return storage.ErrConflict
}

func (c *Collection[E]) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.docKey(id))
		pipe.SRem(ctx, c.indexKey(), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.kind, id, err)
	}
	return nil
}

func (c *Collection[E]) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := c.Delete(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return errors.Join(errs...)
}
