package wizard

import (
	"testing"
	"time"

	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard() *Wizard {
	session := entity.Session{UserID: "u-1", OrganizationID: "org-1"}
	return New(NewState(uuid.New(), session, time.Now()), entity.ConsultationModeAll)
}

func TestNormalizeExperienceYears(t *testing.T) {
	cases := []struct {
		input    string
		expected *int
		err      error
	}{
		{input: "007", expected: intPtr(7)},
		{input: "12", expected: intPtr(12)},
		{input: "0", expected: intPtr(0)},
		{input: "000", expected: intPtr(0)},
		{input: "", expected: nil},
		{input: "   ", expected: nil},
		{input: "-3", err: ErrInvalidExperience},
		{input: "4.5", err: ErrInvalidExperience},
		{input: "ten", err: ErrInvalidExperience},
	}

	for _, c := range cases {
		years, err := NormalizeExperienceYears(c.input)
		if c.err != nil {
			assert.ErrorIs(t, err, c.err, "input %q", c.input)
			continue
		}
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.expected, years, "input %q", c.input)
	}
}

func TestSetDoctorFieldClearsExperienceToUnset(t *testing.T) {
	w := newTestWizard()

	require.NoError(t, w.SetDoctorField(FieldExperienceYears, "007"))
	require.NotNil(t, w.State().Doctor.ExperienceYears)
	assert.Equal(t, 7, *w.State().Doctor.ExperienceYears)

	require.NoError(t, w.SetDoctorField(FieldExperienceYears, ""))
	assert.Nil(t, w.State().Doctor.ExperienceYears)
}

func TestSetDoctorFieldsIsAllOrNothing(t *testing.T) {
	w := newTestWizard()
	require.NoError(t, w.SetDoctorField(FieldName, "A"))

	err := w.SetDoctorFields(map[string]string{
		FieldName:            "B",
		FieldExperienceYears: "abc",
	})
	assert.ErrorIs(t, err, ErrInvalidExperience)
	assert.Equal(t, "A", w.State().Doctor.Name)

	assert.ErrorIs(t, w.SetDoctorField("salary", "1"), ErrUnknownField)
}

func TestToggleChemist(t *testing.T) {
	w := newTestWizard()

	selected, err := w.ToggleChemist("C1")
	require.NoError(t, err)
	assert.True(t, selected)
	_, _ = w.ToggleChemist("C2")
	assert.Equal(t, []string{"C1", "C2"}, w.State().SelectedChemists)

	selected, err = w.ToggleChemist("C1")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Equal(t, []string{"C2"}, w.State().SelectedChemists)

	_, err = w.ToggleChemist(" ")
	assert.ErrorIs(t, err, ErrChemistRequired)
}

func TestIsDirtyAndReset(t *testing.T) {
	w := newTestWizard()
	assert.False(t, w.IsDirty())

	require.NoError(t, w.SetDoctorField(FieldPhone, "1"))
	assert.True(t, w.IsDirty())

	w.Reset()
	assert.False(t, w.IsDirty())
	assert.Equal(t, entity.StepBasicInfo, w.State().Step)
}

func TestLoadDoctorPrepopulatesEditMode(t *testing.T) {
	w := newTestWizard()
	years := 9
	w.LoadDoctor(
		entity.Doctor{ID: "d-9", Name: "Dr. K", Email: "k@x.io", Phone: "5", Specialization: "ENT", ExperienceYears: &years},
		[]entity.HospitalAssociationDraft{{AssociationID: "as-1", HospitalID: "H1"}},
	)

	s := w.State()
	assert.True(t, s.IsEditingDoctor())
	assert.Equal(t, "Dr. K", s.Doctor.Name)
	assert.Equal(t, 9, *s.Doctor.ExperienceYears)
	require.Len(t, s.Associations, 1)
	assert.Equal(t, "as-1", s.Associations[0].AssociationID)
}

func intPtr(v int) *int {
	return &v
}
