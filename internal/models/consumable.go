package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Issue entry statuses
const (
	IssueStatusIssued   = "Issued"
	IssueStatusReversed = "Reversed"
)

// IssueEntry is one row of a consumable's issue log. Issuing decrements the
// stock counter; revoking flips the entry to Reversed and restores the stock.
// Entries are never removed.
type IssueEntry struct {
	ID         uuid.UUID `json:"id"`
	Quantity   int       `json:"quantity"`
	Date       time.Time `json:"date"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Status     string    `json:"status"`
}

type Consumable struct {
	ID          uuid.UUID    `json:"id"`
	TenantID    string       `json:"tenant_id"`
	Name        string       `json:"name"`
	Category    *string      `json:"category,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Quantity    int          `json:"quantity"`
	MinQuantity int          `json:"min_quantity"`
	IssueLog    []IssueEntry `json:"issue_log,omitempty"`
	AuditLog    []AuditEntry `json:"audit_log"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (c Consumable) EntityID() uuid.UUID { return c.ID }
func (c Consumable) Tenant() string      { return c.TenantID }

// OutstandingIssued sums the quantity of all issue entries that have not been
// reversed.
func (c Consumable) OutstandingIssued() int {
	total := 0
	for _, e := range c.IssueLog {
		if e.Status == IssueStatusIssued {
			total += e.Quantity
		}
	}
	return total
}

// IssueDetails is the audit-log detail text for an issue action, shared by
// both backends so histories read the same either way.
func IssueDetails(quantity int, employeeID uuid.UUID) string {
	return fmt.Sprintf("issued %d to employee %s", quantity, employeeID)
}

func RevokeDetails(quantity int, employeeID uuid.UUID) string {
	return fmt.Sprintf("revoked issue of %d to employee %s", quantity, employeeID)
}

// FindIssueEntry returns the index of the issue entry with the given id, or -1.
func (c Consumable) FindIssueEntry(id uuid.UUID) int {
	for i, e := range c.IssueLog {
		if e.ID == id {
			return i
		}
	}
	return -1
}
