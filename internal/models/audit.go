package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionCreated      = "Created"
	AuditActionUpdated      = "Updated"
	AuditActionDeleted      = "Deleted"
	AuditActionCommented    = "Commented"
	AuditActionIssued       = "Issued"
	AuditActionIssueRevoked = "Issue Revoked"
	AuditActionAssigned     = "Assigned"
	AuditActionUnassigned   = "Unassigned"
	AuditActionLocked       = "Locked"
	AuditActionUnlocked     = "Unlocked"
)

// AuditEntry is one row of an entity's embedded audit log. The log is
// append-only: entries are never reordered or mutated after insertion.
type AuditEntry struct {
	ID      uuid.UUID `json:"id"`
	Action  string    `json:"action"`
	Date    time.Time `json:"date"`
	Actor   string    `json:"actor,omitempty"`
	Details string    `json:"details,omitempty"`
}

func NewAuditEntry(action, actor, details string) AuditEntry {
	return AuditEntry{
		ID:      uuid.New(),
		Action:  action,
		Date:    time.Now().UTC(),
		Actor:   actor,
		Details: details,
	}
}

// Comment is a user-authored note on an asset or employee record.
type Comment struct {
	ID     uuid.UUID `json:"id"`
	Text   string    `json:"text"`
	Author string    `json:"author,omitempty"`
	Date   time.Time `json:"date"`
}

// Attachment references an uploaded file stored outside the entity record.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
