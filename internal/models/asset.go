package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset statuses
const (
	AssetStatusAvailable   = "available"
	AssetStatusDeployed    = "deployed"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
	AssetStatusDisposed    = "disposed"
)

// Valid state transitions: from -> []to
var ValidAssetTransitions = map[string][]string{
	AssetStatusAvailable:   {AssetStatusDeployed, AssetStatusMaintenance, AssetStatusRetired},
	AssetStatusDeployed:    {AssetStatusAvailable, AssetStatusMaintenance, AssetStatusRetired},
	AssetStatusMaintenance: {AssetStatusAvailable, AssetStatusDeployed, AssetStatusRetired},
	AssetStatusRetired:     {AssetStatusDisposed},
	AssetStatusDisposed:    {},
}

func IsValidAssetTransition(from, to string) bool {
	allowed, ok := ValidAssetTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type Asset struct {
	ID            uuid.UUID    `json:"id"`
	TenantID      string       `json:"tenant_id"`
	Name          string       `json:"name"`
	Model         *string      `json:"model,omitempty"`
	SerialNumber  *string      `json:"serial_number,omitempty"`
	Category      string       `json:"category"`
	Status        string       `json:"status"`
	Location      *string      `json:"location,omitempty"`
	AssignedTo    *uuid.UUID   `json:"assigned_to,omitempty"` // employee id
	PurchaseDate  *time.Time   `json:"purchase_date,omitempty"`
	PurchasePrice *string      `json:"purchase_price,omitempty"` // numeric as string
	WarrantyUntil *time.Time   `json:"warranty_until,omitempty"`
	Comments      []Comment    `json:"comments,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty"`
	AuditLog      []AuditEntry `json:"audit_log"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (a Asset) EntityID() uuid.UUID { return a.ID }
func (a Asset) Tenant() string      { return a.TenantID }
