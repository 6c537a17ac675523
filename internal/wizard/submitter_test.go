package wizard

import (
	"context"
	"errors"
	"io"
	"testing"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway/gatewaytest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// readyWizard fills the basic info, adds association H1 with one Monday OPD slot,
// selects chemist C1 and moves to review.
func readyWizard(t *testing.T) *Wizard {
	t.Helper()
	w := newTestWizard()
	fillBasicInfo(t, w)
	require.NoError(t, w.GoNext())

	_, err := w.AddConsultationSlot("MONDAY")
	require.NoError(t, err)
	require.NoError(t, w.UpdateConsultationSlot("MONDAY", 0, SlotFieldConsultationType, "OPD"))
	addAssociation(t, w, "H1")
	require.NoError(t, w.GoNext())

	_, err = w.ToggleChemist("C1")
	require.NoError(t, err)
	require.NoError(t, w.GoNext())
	return w
}

func TestSubmitCallSequence(t *testing.T) {
	w := readyWizard(t)
	fake := gatewaytest.NewFake()
	fake.CreatedDoctor = &entity.CreatedDoctor{Success: true, ID: "D1"}
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{UserID: "u-1"}, w.State())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CreateDoctor",
		"CreateHospitalAssociations",
		"CreateConsultationSchedule",
		"CreateChemistRelations",
	}, fake.Methods())

	draft := fake.CallsTo("CreateDoctor")[0].Payload.(entity.DoctorDraft)
	assert.Equal(t, "A", draft.Name)
	assert.Nil(t, draft.ExperienceYears)

	associations := fake.CallsTo("CreateHospitalAssociations")[0].Payload.([]entity.HospitalAssociationRecord)
	require.Len(t, associations, 1)
	assert.Equal(t, "D1", associations[0].DoctorID)
	assert.Equal(t, "H1", associations[0].HospitalID)

	schedule := fake.CallsTo("CreateConsultationSchedule")[0].Payload.(gatewaytest.ScheduleCall)
	assert.Equal(t, "D1", schedule.DoctorID)
	assert.Equal(t, []entity.ConsultationRecord{{
		DayOfWeek:        "MONDAY",
		StartTime:        "09:00",
		EndTime:          "17:00",
		ConsultationType: entity.ConsultationTypeOPD,
		IsActive:         true,
		HospitalID:       "H1",
	}}, schedule.Consultations)

	relations := fake.CallsTo("CreateChemistRelations")[0].Payload.([]entity.ChemistRelation)
	assert.Equal(t, []entity.ChemistRelation{{DoctorID: "D1", ChemistID: "C1"}}, relations)

	assert.Equal(t, entity.SubmissionStatusCompleted, report.Status)
	assert.Equal(t, "D1", report.DoctorID)
	assert.True(t, report.Succeeded())
}

func TestSubmitWithoutDoctorIDStillSendsSchedule(t *testing.T) {
	w := readyWizard(t)
	fake := gatewaytest.NewFake()
	fake.CreatedDoctor = &entity.CreatedDoctor{Success: true}
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateDoctor", "CreateConsultationSchedule"}, fake.Methods())
	schedule := fake.CallsTo("CreateConsultationSchedule")[0].Payload.(gatewaytest.ScheduleCall)
	assert.Equal(t, "", schedule.DoctorID)

	step, ok := report.Step(entity.SubmissionStepCreateDoctor)
	require.True(t, ok)
	assert.Equal(t, entity.SubmissionOutcomeFailed, step.Outcome)
	step, _ = report.Step(entity.SubmissionStepHospitalAssociations)
	assert.Equal(t, entity.SubmissionOutcomeSkipped, step.Outcome)
	step, _ = report.Step(entity.SubmissionStepChemistRelations)
	assert.Equal(t, entity.SubmissionOutcomeSkipped, step.Outcome)
	assert.Equal(t, entity.SubmissionStatusPartial, report.Status)
}

func TestSubmitDoctorTransportErrorBehavesLikeMissingID(t *testing.T) {
	w := readyWizard(t)
	fake := gatewaytest.NewFake()
	fake.CreateDoctorErr = errors.New("connection refused")
	fake.ScheduleErr = errors.New("bad request")
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateDoctor", "CreateConsultationSchedule"}, fake.Methods())
	assert.Equal(t, entity.SubmissionStatusFailed, report.Status)
	step, _ := report.Step(entity.SubmissionStepCreateDoctor)
	assert.Equal(t, "connection refused", step.Error)
}

func TestSubmitContinuesAfterAssociationFailure(t *testing.T) {
	w := readyWizard(t)
	fake := gatewaytest.NewFake()
	fake.AssociationsErr = errors.New("hospital not found")
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	require.NoError(t, err)

	assert.Len(t, fake.CallsTo("CreateConsultationSchedule"), 1)
	assert.Len(t, fake.CallsTo("CreateChemistRelations"), 1)
	assert.Equal(t, entity.SubmissionStatusPartial, report.Status)
}

func TestSubmitSkipsEmptyGroups(t *testing.T) {
	w := newTestWizard()
	fillBasicInfo(t, w)
	require.NoError(t, w.GoNext())
	require.NoError(t, w.GoNext())
	require.NoError(t, w.GoNext())
	fake := gatewaytest.NewFake()
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateDoctor", "CreateConsultationSchedule"}, fake.Methods())
	schedule := fake.CallsTo("CreateConsultationSchedule")[0].Payload.(gatewaytest.ScheduleCall)
	assert.NotNil(t, schedule.Consultations)
	assert.Empty(t, schedule.Consultations)
	assert.Equal(t, entity.SubmissionStatusCompleted, report.Status)
}

func TestSubmitRefusesIncompleteWizard(t *testing.T) {
	w := newTestWizard()
	fillBasicInfo(t, w)
	fake := gatewaytest.NewFake()
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)

	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)
	assert.Nil(t, report)
	assert.Empty(t, fake.Calls)
}

func TestSubmitEditModeSyncsAssociations(t *testing.T) {
	w := newTestWizard()
	w.LoadDoctor(entity.Doctor{ID: "D7", Name: "A", Email: "a@b.com", Phone: "1", Specialization: "Cardio"},
		[]entity.HospitalAssociationDraft{
			{AssociationID: "as-1", HospitalID: "H1"},
			{AssociationID: "as-2", HospitalID: "H2"},
		})
	require.NoError(t, w.RemoveAssociation(1))
	addAssociation(t, w, "H3")
	require.NoError(t, w.GoNext())
	require.NoError(t, w.GoNext())
	require.NoError(t, w.GoNext())

	fake := gatewaytest.NewFake()
	submitter := NewSubmitter(fake, quietLogger(), entity.ConsultationModeAll)
	report, err := submitter.Submit(context.Background(), entity.Session{}, w.State())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CreateHospitalAssociations",
		"UpdateHospitalAssociation",
		"DeleteHospitalAssociation",
		"CreateConsultationSchedule",
	}, fake.Methods())
	assert.Equal(t, "as-2", fake.CallsTo("DeleteHospitalAssociation")[0].Payload)
	assert.True(t, report.EditMode)
	assert.Equal(t, "D7", report.DoctorID)
	step, _ := report.Step(entity.SubmissionStepUpdateDoctor)
	assert.Equal(t, entity.SubmissionOutcomeSkipped, step.Outcome)
	assert.Equal(t, entity.SubmissionStatusCompleted, report.Status)
}
