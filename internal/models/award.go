package models

import (
	"time"

	"github.com/google/uuid"
)

// Award is a recognition record. Once locked it can no longer be edited or
// deleted until explicitly unlocked.
type Award struct {
	ID         uuid.UUID    `json:"id"`
	TenantID   string       `json:"tenant_id"`
	Title      string       `json:"title"`
	EmployeeID *uuid.UUID   `json:"employee_id,omitempty"`
	AwardDate  *time.Time   `json:"award_date,omitempty"`
	Notes      *string      `json:"notes,omitempty"`
	IsLocked   bool         `json:"is_locked"`
	AuditLog   []AuditEntry `json:"audit_log"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (a Award) EntityID() uuid.UUID { return a.ID }
func (a Award) Tenant() string      { return a.TenantID }
