package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubmissionStepName identifies one remote call group of the onboarding saga.
type SubmissionStepName string

const (
	SubmissionStepCreateDoctor          SubmissionStepName = "create_doctor"
	SubmissionStepUpdateDoctor          SubmissionStepName = "update_doctor"
	SubmissionStepHospitalAssociations  SubmissionStepName = "hospital_associations"
	SubmissionStepConsultationSchedules SubmissionStepName = "consultation_schedules"
	SubmissionStepChemistRelations      SubmissionStepName = "chemist_relations"
)

type SubmissionOutcome string

const (
	SubmissionOutcomeOK      SubmissionOutcome = "ok"
	SubmissionOutcomeFailed  SubmissionOutcome = "failed"
	SubmissionOutcomeSkipped SubmissionOutcome = "skipped"
)

type SubmissionStatus string

const (
	SubmissionStatusCompleted SubmissionStatus = "completed"
	SubmissionStatusPartial   SubmissionStatus = "partial"
	SubmissionStatusFailed    SubmissionStatus = "failed"
)

// SubmissionStep is the tagged outcome of one saga step.
type SubmissionStep struct {
	Name    SubmissionStepName `json:"name"`
	Outcome SubmissionOutcome  `json:"outcome"`
	Records int                `json:"records"`
	Error   string             `json:"error,omitempty"`
}

// SubmissionSteps is stored as a jsonb array.
type SubmissionSteps []SubmissionStep

func (s SubmissionSteps) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SubmissionSteps) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal submission steps:", value))
	}
	return json.Unmarshal(bytes, s)
}

// SubmissionReport is the outcome of one wizard submission.
type SubmissionReport struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WizardID       uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"wizard_id"`
	UserID         string           `gorm:"type:varchar(64);index" json:"user_id"`
	OrganizationID string           `gorm:"type:varchar(64);index" json:"organization_id"`
	DoctorID       string           `gorm:"type:varchar(64)" json:"doctor_id,omitempty"`
	DoctorName     string           `gorm:"type:varchar(255)" json:"doctor_name"`
	EditMode       bool             `gorm:"not null;default:false" json:"edit_mode"`
	Status         SubmissionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Steps          SubmissionSteps  `gorm:"type:jsonb" json:"steps"`
	CreatedAt      time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (SubmissionReport) TableName() string {
	return "submission_reports"
}

// Step returns the outcome of the named step, if the saga reached it.
func (r *SubmissionReport) Step(name SubmissionStepName) (SubmissionStep, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return SubmissionStep{}, false
}

// Finalize derives the overall status from the recorded steps.
func (r *SubmissionReport) Finalize() {
	var ok, failed int
	for _, s := range r.Steps {
		switch s.Outcome {
		case SubmissionOutcomeOK:
			ok++
		case SubmissionOutcomeFailed:
			failed++
		}
	}

	switch {
	case failed == 0:
		r.Status = SubmissionStatusCompleted
	case ok == 0:
		r.Status = SubmissionStatusFailed
	default:
		r.Status = SubmissionStatusPartial
	}
}

func (r *SubmissionReport) Succeeded() bool {
	return r.Status == SubmissionStatusCompleted
}
