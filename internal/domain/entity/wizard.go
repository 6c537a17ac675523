package entity

import (
	"time"

	"github.com/google/uuid"
)

// WizardStep is the position in the doctor onboarding wizard.
type WizardStep int

const (
	StepBasicInfo WizardStep = iota
	StepHospitalAssociations
	StepChemistAssociations
	StepReview
)

const (
	FirstWizardStep = StepBasicInfo
	LastWizardStep  = StepReview
)

var wizardStepTitles = [...]string{
	StepBasicInfo:            "Basic Information",
	StepHospitalAssociations: "Hospital Associations",
	StepChemistAssociations:  "Chemist Associations",
	StepReview:               "Review & Confirm",
}

func (s WizardStep) Valid() bool {
	return s >= FirstWizardStep && s <= LastWizardStep
}

func (s WizardStep) Title() string {
	if !s.Valid() {
		return ""
	}
	return wizardStepTitles[s]
}

// WizardStepTitles lists the breadcrumb titles in step order.
func WizardStepTitles() []string {
	return append([]string(nil), wizardStepTitles[:]...)
}

// DoctorDraft is the in-progress doctor profile collected on the first step.
type DoctorDraft struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Specialization  string `json:"specialization"`
	Designation     string `json:"designation"`
	Qualification   string `json:"qualification"`
	ExperienceYears *int   `json:"experienceYears"`
	Description     string `json:"description"`
}

// HospitalAssociationDraft is one pending doctor-hospital link.
// AssociationID is only set for links loaded from the backend while editing a doctor.
type HospitalAssociationDraft struct {
	AssociationID        string         `json:"associationId,omitempty"`
	HospitalID           string         `json:"hospitalId"`
	Department           string         `json:"department"`
	Position             string         `json:"position"`
	IsPrimary            bool           `json:"isPrimary"`
	AssociationStartDate string         `json:"associationStartDate"`
	AssociationEndDate   string         `json:"associationEndDate"`
	Schedule             WeeklySchedule `json:"schedule"`
}

func (a HospitalAssociationDraft) Clone() HospitalAssociationDraft {
	a.Schedule = a.Schedule.Clone()
	return a
}

// HospitalAssociationRecord is the wire shape of an association sent to the backend.
type HospitalAssociationRecord struct {
	HospitalAssociationDraft
	DoctorID string `json:"doctorId"`
}

// ConsultationRecord is one flattened schedule entry sent to the backend.
type ConsultationRecord struct {
	DayOfWeek        string           `json:"dayOfWeek"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	ConsultationType ConsultationType `json:"consultationType"`
	IsActive         bool             `json:"isActive"`
	HospitalID       string           `json:"hospitalId"`
}

type ChemistRelation struct {
	DoctorID  string `json:"doctorId"`
	ChemistID string `json:"chemistId"`
}

// ConsultationMode selects which associations feed the consultation submission.
type ConsultationMode string

const (
	// ConsultationModeAll flattens every association at submit time.
	ConsultationModeAll ConsultationMode = "all"
	// ConsultationModeLatest keeps only the schedule of the most recently added association.
	ConsultationModeLatest ConsultationMode = "latest"
)

func ParseConsultationMode(s string) ConsultationMode {
	if ConsultationMode(s) == ConsultationModeLatest {
		return ConsultationModeLatest
	}
	return ConsultationModeAll
}

// WizardState is everything the wizard accumulates between open and close.
type WizardState struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"userId"`
	OrganizationID string    `json:"organizationId"`

	// DoctorID is set when the wizard edits an existing doctor.
	DoctorID string `json:"doctorId,omitempty"`

	Step                  WizardStep                 `json:"step"`
	Doctor                DoctorDraft                `json:"doctor"`
	Associations          []HospitalAssociationDraft `json:"associations"`
	AssociationDraft      HospitalAssociationDraft   `json:"associationDraft"`
	EditIndex             *int                       `json:"editIndex,omitempty"`
	SelectedChemists      []string                   `json:"selectedChemists"`
	LatestConsultations   []ConsultationRecord       `json:"latestConsultations"`
	RemovedAssociationIDs []string                   `json:"removedAssociationIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *WizardState) IsEditingDoctor() bool {
	return s.DoctorID != ""
}
