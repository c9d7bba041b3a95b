package models

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    string       `json:"tenant_id"`
	Name        string       `json:"name"`
	ContactName *string      `json:"contact_name,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Products    []string     `json:"products,omitempty"`
	AuditLog    []AuditEntry `json:"audit_log"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (v Vendor) EntityID() uuid.UUID { return v.ID }
func (v Vendor) Tenant() string      { return v.TenantID }
