// Package wizard holds the doctor onboarding wizard: the form state operations,
// the hospital association builder, the step machine and the submission saga.
// Everything except Submitter is pure state manipulation on entity.WizardState.
package wizard

import (
	"errors"
	"time"

	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrUnknownField            = errors.New("unknown field")
	ErrInvalidExperience       = errors.New("experience years must be a non-negative whole number")
	ErrInvalidDate             = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime             = errors.New("invalid time format, use HH:MM")
	ErrInvalidBool             = errors.New("invalid boolean value")
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrUnknownDay              = errors.New("unknown day of week")
	ErrInvalidConsultationType = errors.New("invalid consultation type")
	ErrHospitalRequired        = errors.New("hospital is required to add an association")
	ErrChemistRequired         = errors.New("chemist id is required")
	ErrStepInvalid             = errors.New("current step is not complete")
	ErrAtLastStep              = errors.New("already at the last step")
	ErrStepUnreachable         = errors.New("step is not reachable yet")
	ErrNotReadyToSubmit        = errors.New("wizard is not ready to submit")
)

// Wizard applies wizard operations to a state it does not own.
type Wizard struct {
	state *entity.WizardState
	mode  entity.ConsultationMode
}

func New(state *entity.WizardState, mode entity.ConsultationMode) *Wizard {
	return &Wizard{state: state, mode: mode}
}

// NewState returns an empty wizard for the session's user.
func NewState(id uuid.UUID, session entity.Session, now time.Time) *entity.WizardState {
	state := &entity.WizardState{
		ID:             id,
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	resetForm(state)
	return state
}

func (w *Wizard) State() *entity.WizardState {
	return w.state
}

// Reset returns the form to its defaults, keeping the wizard identity.
func (w *Wizard) Reset() {
	resetForm(w.state)
}

// IsDirty reports whether anything was entered since the wizard was opened empty.
func (w *Wizard) IsDirty() bool {
	s := w.state
	return s.Step != entity.FirstWizardStep ||
		s.Doctor != (entity.DoctorDraft{}) ||
		len(s.Associations) > 0 ||
		len(s.SelectedChemists) > 0 ||
		s.EditIndex != nil ||
		!isDefaultAssociation(s.AssociationDraft)
}

func resetForm(s *entity.WizardState) {
	s.Step = entity.FirstWizardStep
	s.Doctor = entity.DoctorDraft{}
	s.Associations = []entity.HospitalAssociationDraft{}
	s.AssociationDraft = entity.HospitalAssociationDraft{}
	s.EditIndex = nil
	s.SelectedChemists = []string{}
	s.LatestConsultations = []entity.ConsultationRecord{}
	s.RemovedAssociationIDs = nil
	s.DoctorID = ""
}

func isDefaultAssociation(a entity.HospitalAssociationDraft) bool {
	return a.AssociationID == "" && a.HospitalID == "" && a.Department == "" &&
		a.Position == "" && !a.IsPrimary && a.AssociationStartDate == "" &&
		a.AssociationEndDate == "" && a.Schedule.SlotCount() == 0
}
