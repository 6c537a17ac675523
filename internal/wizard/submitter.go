package wizard

import (
	"context"
	"errors"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorIDMissing      = errors.New("backend did not return a doctor id")
	ErrDoctorUpdateMissing  = errors.New("backend has no doctor update endpoint")
	ErrNoDoctorForRelations = errors.New("no doctor id to link to")
)

// Submitter runs the onboarding saga: doctor, hospital associations, consultation
// schedules, chemist relations. Calls are sequential and each step's outcome is
// recorded instead of aborting the rest.
type Submitter struct {
	gateway gateway.ForPharmaGateway
	log     *logrus.Logger
	mode    entity.ConsultationMode
}

func NewSubmitter(gw gateway.ForPharmaGateway, log *logrus.Logger, mode entity.ConsultationMode) *Submitter {
	return &Submitter{gateway: gw, log: log, mode: mode}
}

// Submit returns ErrNotReadyToSubmit without any remote call when the wizard is not
// on the review step with complete basic information. Otherwise it always returns a
// finalized report; remote failures are inside the report.
func (s *Submitter) Submit(ctx context.Context, session entity.Session, state *entity.WizardState) (*entity.SubmissionReport, error) {
	if err := ReadyToSubmit(state); err != nil {
		return nil, err
	}

	report := &entity.SubmissionReport{
		WizardID:       state.ID,
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		DoctorName:     state.Doctor.Name,
		EditMode:       state.IsEditingDoctor(),
	}
	log := s.log.WithFields(logrus.Fields{
		"wizard_id": state.ID.String(),
		"user_id":   session.UserID,
	})

	doctorID := s.submitDoctor(ctx, session, state, report, log)
	report.DoctorID = doctorID

	s.submitAssociations(ctx, session, state, doctorID, report, log)

	consultations := Consultations(state, s.mode)
	err := s.gateway.CreateConsultationSchedule(ctx, session, doctorID, consultations)
	s.record(report, log, entity.SubmissionStepConsultationSchedules, len(consultations), err)

	s.submitChemists(ctx, session, state, doctorID, report, log)

	report.Finalize()
	log.WithField("status", report.Status).Info("Doctor onboarding submitted")
	return report, nil
}

func (s *Submitter) submitDoctor(ctx context.Context, session entity.Session, state *entity.WizardState, report *entity.SubmissionReport, log *logrus.Entry) string {
	if state.IsEditingDoctor() {
		s.skip(report, log, entity.SubmissionStepUpdateDoctor, ErrDoctorUpdateMissing.Error())
		return state.DoctorID
	}

	created, err := s.gateway.CreateDoctor(ctx, session, state.Doctor)
	if err == nil && (created == nil || !created.Success || created.ID == "") {
		err = ErrDoctorIDMissing
	}
	s.record(report, log, entity.SubmissionStepCreateDoctor, 1, err)
	if err != nil {
		return ""
	}
	return created.ID
}

func (s *Submitter) submitAssociations(ctx context.Context, session entity.Session, state *entity.WizardState, doctorID string, report *entity.SubmissionReport, log *logrus.Entry) {
	step := entity.SubmissionStepHospitalAssociations
	if doctorID == "" {
		s.skip(report, log, step, ErrNoDoctorForRelations.Error())
		return
	}
	if len(state.Associations) == 0 && len(state.RemovedAssociationIDs) == 0 {
		s.skip(report, log, step, "")
		return
	}

	var created, updates []entity.HospitalAssociationRecord
	for _, a := range state.Associations {
		record := entity.HospitalAssociationRecord{HospitalAssociationDraft: a, DoctorID: doctorID}
		if a.AssociationID != "" {
			updates = append(updates, record)
		} else {
			created = append(created, record)
		}
	}

	var errs []error
	if len(created) > 0 {
		if err := s.gateway.CreateHospitalAssociations(ctx, session, created); err != nil {
			errs = append(errs, err)
		}
	}
	for _, record := range updates {
		if err := s.gateway.UpdateHospitalAssociation(ctx, session, record.AssociationID, record); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range state.RemovedAssociationIDs {
		if err := s.gateway.DeleteHospitalAssociation(ctx, session, id); err != nil {
			errs = append(errs, err)
		}
	}

	s.record(report, log, step, len(created)+len(updates)+len(state.RemovedAssociationIDs), errors.Join(errs...))
}

func (s *Submitter) submitChemists(ctx context.Context, session entity.Session, state *entity.WizardState, doctorID string, report *entity.SubmissionReport, log *logrus.Entry) {
	step := entity.SubmissionStepChemistRelations
	if doctorID == "" {
		s.skip(report, log, step, ErrNoDoctorForRelations.Error())
		return
	}
	if len(state.SelectedChemists) == 0 {
		s.skip(report, log, step, "")
		return
	}

	relations := make([]entity.ChemistRelation, len(state.SelectedChemists))
	for i, chemistID := range state.SelectedChemists {
		relations[i] = entity.ChemistRelation{DoctorID: doctorID, ChemistID: chemistID}
	}
	err := s.gateway.CreateChemistRelations(ctx, session, relations)
	s.record(report, log, step, len(relations), err)
}

func (s *Submitter) record(report *entity.SubmissionReport, log *logrus.Entry, name entity.SubmissionStepName, records int, err error) {
	step := entity.SubmissionStep{Name: name, Outcome: entity.SubmissionOutcomeOK, Records: records}
	if err != nil {
		step.Outcome = entity.SubmissionOutcomeFailed
		step.Error = err.Error()
		log.WithField("step", name).Warnf("Failed onboarding step: %+v", err)
	}
	report.Steps = append(report.Steps, step)
}

func (s *Submitter) skip(report *entity.SubmissionReport, log *logrus.Entry, name entity.SubmissionStepName, reason string) {
	report.Steps = append(report.Steps, entity.SubmissionStep{
		Name:    name,
		Outcome: entity.SubmissionOutcomeSkipped,
		Error:   reason,
	})
	log.WithField("step", name).Debug("Skipped onboarding step")
}
