package models

import (
	"time"

	"github.com/google/uuid"
)

// SoftwareAssignment records one license seat handed to an employee.
type SoftwareAssignment struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       time.Time `json:"date"`
}

type Software struct {
	ID         uuid.UUID            `json:"id"`
	TenantID   string               `json:"tenant_id"`
	Name       string               `json:"name"`
	Version    *string              `json:"version,omitempty"`
	Publisher  *string              `json:"publisher,omitempty"`
	LicenseKey *string              `json:"license_key,omitempty"`
	Seats      int                  `json:"seats"`
	ExpiryDate *time.Time           `json:"expiry_date,omitempty"`
	AssignedTo []SoftwareAssignment `json:"assigned_to,omitempty"`
	AuditLog   []AuditEntry         `json:"audit_log"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func (s Software) EntityID() uuid.UUID { return s.ID }
func (s Software) Tenant() string      { return s.TenantID }

// SeatsLeft reports how many license seats remain unassigned.
func (s Software) SeatsLeft() int {
	return s.Seats - len(s.AssignedTo)
}

// FindAssignment returns the index of the assignment for the given employee,
// or -1 if none exists.
func (s Software) FindAssignment(employeeID uuid.UUID) int {
	for i, a := range s.AssignedTo {
		if a.EmployeeID == employeeID {
			return i
		}
	}
	return -1
}
