package dto

import "github.com/google/uuid"

type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type IssueRequest struct {
	Quantity   int       `json:"quantity"`
	EmployeeID uuid.UUID `json:"employee_id"`
}

type RevokeRequest struct {
	EntryID uuid.UUID `json:"entry_id"`
}

type AssignRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
}

type BatchUpdateRequest struct {
	IDs    []uuid.UUID    `json:"ids"`
	Fields map[string]any `json:"fields"`
}

type BatchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}
