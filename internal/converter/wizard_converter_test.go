package converter

import (
	"testing"
	"time"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardToResponseEmitsEveryScheduleDay(t *testing.T) {
	state := wizard.NewState(uuid.New(), entity.Session{UserID: "user-1"}, time.Now())
	w := wizard.New(state, entity.ConsultationModeAll)

	resp := WizardToResponse(w)
	require.NotNil(t, resp)

	assert.Len(t, resp.AssociationDraft.Schedule, 7)
	for _, day := range []string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"} {
		slots, ok := resp.AssociationDraft.Schedule[day]
		assert.True(t, ok, day)
		assert.NotNil(t, slots, day)
	}
	assert.Equal(t, []string{}, resp.SelectedChemists)
	assert.Equal(t, "Basic Information", resp.CurrentStepTitle)
	assert.Len(t, resp.Steps, 4)
	assert.False(t, resp.CanAdvance)
	assert.False(t, resp.IsDirty)
}

func TestWizardToResponseConsultations(t *testing.T) {
	state := wizard.NewState(uuid.New(), entity.Session{UserID: "user-1"}, time.Now())
	w := wizard.New(state, entity.ConsultationModeAll)

	require.NoError(t, w.SetAssociationField("hospitalId", "hosp-1"))
	idx, err := w.AddConsultationSlot("monday")
	require.NoError(t, err)
	require.NoError(t, w.UpdateConsultationSlot("MONDAY", idx, wizard.SlotFieldConsultationType, "OPD"))
	require.NoError(t, w.AddOrUpdateAssociation())

	resp := WizardToResponse(w)
	require.Len(t, resp.Associations, 1)
	assert.Equal(t, "hosp-1", resp.Associations[0].HospitalID)
	require.Len(t, resp.Associations[0].Schedule["MONDAY"], 1)
	assert.Equal(t, "OPD", resp.Associations[0].Schedule["MONDAY"][0].ConsultationType)

	require.Len(t, resp.Consultations, 1)
	assert.Equal(t, "MONDAY", resp.Consultations[0].DayOfWeek)
	assert.Equal(t, "hosp-1", resp.Consultations[0].HospitalID)
	assert.True(t, resp.IsDirty)
}

func TestDoctorDraftUpdateToFieldsSkipsAbsentFields(t *testing.T) {
	name := "Dr. Rao"
	years := "007"
	fields := DoctorDraftUpdateToFields(&dto.UpdateDoctorDraftRequest{Name: &name, ExperienceYears: &years})

	assert.Equal(t, map[string]string{
		wizard.FieldName:            "Dr. Rao",
		wizard.FieldExperienceYears: "007",
	}, fields)
}

func TestWizardToResponseNil(t *testing.T) {
	assert.Nil(t, WizardToResponse(nil))
}
