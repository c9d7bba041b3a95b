package relstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/backend/internal/models"
)

func sampleAsset() models.Asset {
	serial := "SN-0042"
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return models.Asset{
		ID:           uuid.New(),
		TenantID:     "acme",
		Name:         "ThinkPad X1",
		SerialNumber: &serial,
		Category:     "laptop",
		Status:       models.AssetStatusDeployed,
		Comments: []models.Comment{
			{ID: uuid.New(), Text: "screen flickers", Author: "jo", Date: now},
		},
		Attachments: []models.Attachment{
			{ID: uuid.New(), FileName: "invoice.pdf", URL: "https://files/invoice.pdf", UploadedAt: now},
		},
		AuditLog: []models.AuditEntry{
			{ID: uuid.New(), Action: models.AuditActionCreated, Date: now, Actor: "jo"},
			{ID: uuid.New(), Action: models.AuditActionUpdated, Date: now, Actor: "sam", Details: "moved"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Structured fields must survive a round trip through the relational row
// shape with identical in-memory form.
func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("comments", "audit_log", "attachments")
	original := sampleAsset()

	row, err := codec.Encode(original)
	require.NoError(t, err)

	// Structured fields travel as serialized text.
	_, isString := row["audit_log"].(string)
	assert.True(t, isString, "audit_log should be encoded as text")
	_, isString = row["comments"].(string)
	assert.True(t, isString, "comments should be encoded as text")

	// Re-encode to the raw wire form the gateway would return.
	wire, err := json.Marshal(row)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(wire, &raw))

	var decoded models.Asset
	require.NoError(t, codec.Decode(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestCodecRoundTripConsumable(t *testing.T) {
	codec := NewCodec("issue_log", "audit_log")
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	original := models.Consumable{
		ID:       uuid.New(),
		TenantID: "acme",
		Name:     "HDMI cable",
		Quantity: 6,
		IssueLog: []models.IssueEntry{
			{ID: uuid.New(), Quantity: 4, Date: now, EmployeeID: uuid.New(), Status: models.IssueStatusIssued},
		},
		AuditLog:  []models.AuditEntry{{ID: uuid.New(), Action: models.AuditActionCreated, Date: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	row, err := codec.Encode(original)
	require.NoError(t, err)
	wire, err := json.Marshal(row)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(wire, &raw))

	var decoded models.Consumable
	require.NoError(t, codec.Decode(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestCodecDecodeTreatsNullTextAsAbsent(t *testing.T) {
	codec := NewCodec("comments", "audit_log", "attachments")
	raw := map[string]json.RawMessage{
		"id":        json.RawMessage(`"` + uuid.NewString() + `"`),
		"tenant_id": json.RawMessage(`"acme"`),
		"name":      json.RawMessage(`"bare"`),
		"comments":  json.RawMessage(`null`),
		"audit_log": json.RawMessage(`""`),
	}

	var decoded models.Asset
	require.NoError(t, codec.Decode(raw, &decoded))
	assert.Nil(t, decoded.Comments)
	assert.Nil(t, decoded.AuditLog)
}

func TestCodecDecodeRejectsCorruptPayload(t *testing.T) {
	codec := NewCodec("audit_log")
	raw := map[string]json.RawMessage{
		"audit_log": json.RawMessage(`"{not json"`),
	}
	var decoded models.Asset
	assert.Error(t, codec.Decode(raw, &decoded))
}
