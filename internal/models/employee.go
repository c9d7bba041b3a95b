package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID         uuid.UUID    `json:"id"`
	TenantID   string       `json:"tenant_id"`
	Name       string       `json:"name"`
	Email      *string      `json:"email,omitempty"`
	Department *string      `json:"department,omitempty"`
	Title      *string      `json:"title,omitempty"`
	Location   *string      `json:"location,omitempty"`
	JoinDate   *time.Time   `json:"join_date,omitempty"`
	Status     string       `json:"status"` // active / on_leave / exited
	Comments   []Comment    `json:"comments,omitempty"`
	AuditLog   []AuditEntry `json:"audit_log"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (e Employee) EntityID() uuid.UUID { return e.ID }
func (e Employee) Tenant() string      { return e.TenantID }
