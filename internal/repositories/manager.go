package repositories

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/storage"
	"github.com/assetdesk/backend/internal/storage/relstore"
)

// Manager hands out the repository set for a tenant, building it on first use
// and caching it after. Provider resolution is delegated to the configured
// resolve func so tests can stub it.
type Manager struct {
	rdb     *redis.Client
	gw      *relstore.Client
	pub     events.Publisher
	log     *zap.Logger
	resolve func(tenantID string) (storage.TenantConfig, error)

	mu    sync.Mutex
	cache map[string]*Repos
}

func NewManager(rdb *redis.Client, gw *relstore.Client, pub events.Publisher, log *zap.Logger, resolve func(string) (storage.TenantConfig, error)) *Manager {
	return &Manager{
		rdb:     rdb,
		gw:      gw,
		pub:     pub,
		log:     log,
		resolve: resolve,
		cache:   make(map[string]*Repos),
	}
}

func (m *Manager) For(tenantID string) (*Repos, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if repos, ok := m.cache[tenantID]; ok {
		return repos, nil
	}
	cfg, err := m.resolve(tenantID)
	if err != nil {
		return nil, err
	}
	repos, err := New(cfg, m.rdb, m.gw, m.pub, m.log)
	if err != nil {
		return nil, err
	}
	m.cache[tenantID] = repos
	m.log.Info("tenant repositories ready",
		zap.String("tenant_id", tenantID),
		zap.String("provider", string(cfg.Provider)))
	return repos, nil
}
