package dto

import "time"

// Request DTOs

// UpdateDoctorDraftRequest patches the wizard's doctor draft. Absent fields are left as
// they are; experience_years is the raw form text, "" clears it.
type UpdateDoctorDraftRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=255"`
	Email           *string `json:"email" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Specialization  *string `json:"specialization" validate:"omitempty,max=255"`
	Designation     *string `json:"designation" validate:"omitempty,max=255"`
	Qualification   *string `json:"qualification" validate:"omitempty,max=255"`
	ExperienceYears *string `json:"experience_years" validate:"omitempty,max=3"`
	Description     *string `json:"description"`
}

// Response DTOs

type DoctorResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Specialization  string    `json:"specialization"`
	Designation     string    `json:"designation,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
	ExperienceYears *int      `json:"experience_years"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
