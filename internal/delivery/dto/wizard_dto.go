package dto

import (
	"time"

	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type OpenWizardRequest struct {
	// DoctorID opens the wizard on an existing doctor.
	DoctorID string `json:"doctor_id"`
}

type AssociationDraftRequest struct {
	HospitalID           string `json:"hospital_id" validate:"max=64"`
	Department           string `json:"department" validate:"max=255"`
	Position             string `json:"position" validate:"max=255"`
	IsPrimary            bool   `json:"is_primary"`
	AssociationStartDate string `json:"association_start_date" validate:"omitempty,datetime=2006-01-02"`
	AssociationEndDate   string `json:"association_end_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateSlotRequest struct {
	ConsultationType *string `json:"consultation_type" validate:"omitempty,oneof=OPD EMERGENCY SPECIAL SURGERY"`
	From             *string `json:"from" validate:"omitempty,datetime=15:04"`
	To               *string `json:"to" validate:"omitempty,datetime=15:04"`
}

// Response DTOs

type ConsultationSlotResponse struct {
	ConsultationType string `json:"consultation_type"`
	From             string `json:"from"`
	To               string `json:"to"`
}

type AssociationResponse struct {
	AssociationID        string                                `json:"association_id,omitempty"`
	HospitalID           string                                `json:"hospital_id"`
	Department           string                                `json:"department"`
	Position             string                                `json:"position"`
	IsPrimary            bool                                  `json:"is_primary"`
	AssociationStartDate string                                `json:"association_start_date"`
	AssociationEndDate   string                                `json:"association_end_date"`
	Schedule             map[string][]ConsultationSlotResponse `json:"schedule"`
}

type DoctorDraftResponse struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Specialization  string `json:"specialization"`
	Designation     string `json:"designation"`
	Qualification   string `json:"qualification"`
	ExperienceYears *int   `json:"experience_years"`
	Description     string `json:"description"`
}

type WizardResponse struct {
	ID               uuid.UUID                   `json:"id"`
	DoctorID         string                      `json:"doctor_id,omitempty"`
	EditMode         bool                        `json:"edit_mode"`
	CurrentStep      int                         `json:"current_step"`
	CurrentStepTitle string                      `json:"current_step_title"`
	Steps            []string                    `json:"steps"`
	IsDirty          bool                        `json:"is_dirty"`
	IsStepValid      bool                        `json:"is_step_valid"`
	CanAdvance       bool                        `json:"can_advance"`
	Doctor           DoctorDraftResponse         `json:"doctor"`
	Associations     []AssociationResponse       `json:"associations"`
	AssociationDraft AssociationResponse         `json:"association_draft"`
	EditIndex        *int                        `json:"edit_index"`
	SelectedChemists []string                    `json:"selected_chemists"`
	Consultations    []entity.ConsultationRecord `json:"consultations"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// NavigationResponse is the answer to a back request. Exited means the wizard was on
// its first step and has been closed.
type NavigationResponse struct {
	Exited bool            `json:"exited"`
	Wizard *WizardResponse `json:"wizard,omitempty"`
}

type SlotResponse struct {
	Day    string          `json:"day"`
	Index  int             `json:"index"`
	Wizard *WizardResponse `json:"wizard"`
}

type ChemistToggleResponse struct {
	ChemistID string          `json:"chemist_id"`
	Selected  bool            `json:"selected"`
	Wizard    *WizardResponse `json:"wizard"`
}
