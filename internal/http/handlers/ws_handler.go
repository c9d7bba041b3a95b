package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/auth"
	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/events"
)

// WSHub fans entity-change events out to connected activity feeds. Each
// connection only ever sees its own tenant's events.
type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	go func() {
		if err := h.subscriber.Subscribe(ctx, h.broadcast); err != nil && ctx.Err() == nil {
			h.log.Error("event subscription ended", zap.Error(err))
		}
	}()
}

func (h *WSHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[event.TenantID] {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseJWT(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	tenantID := claims.TenantID

	h.mu.Lock()
	h.connections[tenantID] = append(h.connections[tenantID], conn)
	h.mu.Unlock()

	h.log.Debug("activity feed connected", zap.String("tenant_id", tenantID))

	// Block until the client goes away; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.connections[tenantID]
	for i, cn := range conns {
		if cn == conn {
			h.connections[tenantID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[tenantID]) == 0 {
		delete(h.connections, tenantID)
	}
	h.mu.Unlock()

	conn.Close()
}
