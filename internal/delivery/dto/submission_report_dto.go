package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SubmissionReportListRequest struct {
	Page   int    `validate:"gte=1"`
	Limit  int    `validate:"gte=1,lte=100"`
	Status string `validate:"omitempty,oneof=completed partial failed"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type SubmissionStepResponse struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

type SubmissionReportResponse struct {
	ID         uuid.UUID                `json:"id"`
	WizardID   uuid.UUID                `json:"wizard_id"`
	UserID     string                   `json:"user_id"`
	DoctorID   string                   `json:"doctor_id,omitempty"`
	DoctorName string                   `json:"doctor_name"`
	EditMode   bool                     `json:"edit_mode"`
	Status     string                   `json:"status"`
	Steps      []SubmissionStepResponse `json:"steps"`
	CreatedAt  time.Time                `json:"created_at"`
}
