// Package relstore is the relational-backend implementation of the storage
// contract. It talks to the relational gateway: a single HTTP endpoint that
// executes named server-side actions against Postgres. Structured sub-fields
// (audit logs, comments, issue logs, attachments, assignments, products) are
// serialized to text at this boundary because the relational rows have no
// native nested-column support; domain models never see the encoded form.
package relstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/storage"
)

// Client posts named actions to the relational gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

type gatewayError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Call executes one named action. The payload's fields are flattened into the
// request body next to the envelope fields, per the gateway wire contract:
// {action, tenant_id, config, ...actionSpecificFields}. The flat namespace is
// shared, so payload keys that would shadow the envelope are rejected; a row's
// own tenant_id is allowed only when it matches the call scope (the gateway
// re-derives the column from the envelope anyway). A non-2xx response carrying
// a known error code is mapped back to its sentinel error.
func (c *Client) Call(ctx context.Context, action, tenantID string, cfg storage.RelationalConfig, payload map[string]any, out any) error {
	body := make(map[string]any, len(payload)+3)
	for k, v := range payload {
		switch k {
		case "action", "config":
			return fmt.Errorf("%s: payload field %q collides with the envelope", action, k)
		case "tenant_id":
			if s, ok := v.(string); !ok || s != tenantID {
				return fmt.Errorf("%s: payload tenant_id does not match call scope %q", action, tenantID)
			}
		}
		body[k] = v
	}
	body["action"] = action
	body["tenant_id"] = tenantID
	body["config"] = cfg

	c.log.Debug("gateway call", zap.String("action", action), zap.String("tenant_id", tenantID))

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gwErr gatewayError
		if err := json.NewDecoder(resp.Body).Decode(&gwErr); err != nil {
			return fmt.Errorf("gateway returned %d for %s", resp.StatusCode, action)
		}
		if sentinel := storage.CodeToError(gwErr.Code); sentinel != nil {
			return fmt.Errorf("%s: %w", action, sentinel)
		}
		return fmt.Errorf("gateway %s failed: %s", action, gwErr.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}
