package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type User struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    string       `json:"tenant_id"`
	Email       string       `json:"email"`
	Name        *string      `json:"name,omitempty"`
	Role        string       `json:"role"`
	Disabled    bool         `json:"disabled"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
	AuditLog    []AuditEntry `json:"audit_log"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (u User) EntityID() uuid.UUID { return u.ID }
func (u User) Tenant() string      { return u.TenantID }
