package dto

import (
	"time"

	"forpharma-console/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID             int64       `json:"id"`
	UserID         string      `json:"user_id"`
	OrganizationID string      `json:"organization_id"`
	Action         string      `json:"action"`
	Metadata       entity.JSON `json:"metadata"`
	CreatedAt      time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
