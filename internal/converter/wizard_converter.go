package converter

import (
	"time"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/wizard"
)

// WizardToResponse converts a wizard to WizardResponse DTO, including the derived
// navigation flags and the consultations a submit would send
func WizardToResponse(w *wizard.Wizard) *dto.WizardResponse {
	if w == nil {
		return nil
	}
	s := w.State()

	associations := make([]dto.AssociationResponse, len(s.Associations))
	for i, a := range s.Associations {
		associations[i] = AssociationToResponse(a)
	}

	selected := s.SelectedChemists
	if selected == nil {
		selected = []string{}
	}

	return &dto.WizardResponse{
		ID:               s.ID,
		DoctorID:         s.DoctorID,
		EditMode:         s.IsEditingDoctor(),
		CurrentStep:      int(s.Step),
		CurrentStepTitle: s.Step.Title(),
		Steps:            entity.WizardStepTitles(),
		IsDirty:          w.IsDirty(),
		IsStepValid:      w.IsStepValid(),
		CanAdvance:       w.CanAdvance(),
		Doctor: dto.DoctorDraftResponse{
			Name:            s.Doctor.Name,
			Email:           s.Doctor.Email,
			Phone:           s.Doctor.Phone,
			Specialization:  s.Doctor.Specialization,
			Designation:     s.Doctor.Designation,
			Qualification:   s.Doctor.Qualification,
			ExperienceYears: s.Doctor.ExperienceYears,
			Description:     s.Doctor.Description,
		},
		Associations:     associations,
		AssociationDraft: AssociationToResponse(s.AssociationDraft),
		EditIndex:        s.EditIndex,
		SelectedChemists: selected,
		Consultations:    w.Consultations(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// AssociationToResponse always emits all seven schedule days
func AssociationToResponse(a entity.HospitalAssociationDraft) dto.AssociationResponse {
	schedule := make(map[string][]dto.ConsultationSlotResponse, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		slots := a.Schedule.Day(d)
		out := make([]dto.ConsultationSlotResponse, len(slots))
		for i, slot := range slots {
			out[i] = dto.ConsultationSlotResponse{
				ConsultationType: string(slot.ConsultationType),
				From:             slot.From,
				To:               slot.To,
			}
		}
		schedule[entity.WeekdayName(d)] = out
	}

	return dto.AssociationResponse{
		AssociationID:        a.AssociationID,
		HospitalID:           a.HospitalID,
		Department:           a.Department,
		Position:             a.Position,
		IsPrimary:            a.IsPrimary,
		AssociationStartDate: a.AssociationStartDate,
		AssociationEndDate:   a.AssociationEndDate,
		Schedule:             schedule,
	}
}

// AssociationRequestToDetails converts the draft request to wizard association details
func AssociationRequestToDetails(req *dto.AssociationDraftRequest) wizard.AssociationDetails {
	return wizard.AssociationDetails{
		HospitalID:           req.HospitalID,
		Department:           req.Department,
		Position:             req.Position,
		IsPrimary:            req.IsPrimary,
		AssociationStartDate: req.AssociationStartDate,
		AssociationEndDate:   req.AssociationEndDate,
	}
}

// AssociationRecordsToDrafts strips the doctor id from backend associations for edit mode
func AssociationRecordsToDrafts(records []entity.HospitalAssociationRecord) []entity.HospitalAssociationDraft {
	drafts := make([]entity.HospitalAssociationDraft, len(records))
	for i, r := range records {
		drafts[i] = r.HospitalAssociationDraft
	}
	return drafts
}
