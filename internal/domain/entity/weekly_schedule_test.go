package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyScheduleAlwaysHasSevenDays(t *testing.T) {
	var schedule WeeklySchedule
	schedule[time.Wednesday] = []ConsultationSlot{NewConsultationSlot()}

	raw, err := json.Marshal(schedule)
	require.NoError(t, err)

	var days map[string][]ConsultationSlot
	require.NoError(t, json.Unmarshal(raw, &days))
	assert.Len(t, days, 7)
	for _, name := range []string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"} {
		slots, ok := days[name]
		assert.True(t, ok, name)
		assert.NotNil(t, slots, name)
	}
	assert.Len(t, days["WEDNESDAY"], 1)
}

func TestWeeklyScheduleUnmarshal(t *testing.T) {
	var schedule WeeklySchedule
	err := json.Unmarshal([]byte(`{"monday":[{"consultationType":"OPD","from":"08:00","to":"10:00"}]}`), &schedule)
	require.NoError(t, err)
	assert.Equal(t, 1, schedule.SlotCount())
	assert.Equal(t, ConsultationTypeOPD, schedule.Day(time.Monday)[0].ConsultationType)

	err = json.Unmarshal([]byte(`{"MOONDAY":[]}`), &schedule)
	assert.Error(t, err)
}

func TestWeeklyScheduleCloneIsDeep(t *testing.T) {
	var schedule WeeklySchedule
	schedule[time.Monday] = []ConsultationSlot{NewConsultationSlot()}

	clone := schedule.Clone()
	clone[time.Monday][0].From = "11:00"

	assert.Equal(t, DefaultSlotFrom, schedule[time.Monday][0].From)
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday(" thursday ")
	assert.True(t, ok)
	assert.Equal(t, time.Thursday, d)

	_, ok = ParseWeekday("thu")
	assert.False(t, ok)
}

func TestSubmissionReportFinalize(t *testing.T) {
	report := &SubmissionReport{Steps: SubmissionSteps{
		{Name: SubmissionStepCreateDoctor, Outcome: SubmissionOutcomeOK},
		{Name: SubmissionStepChemistRelations, Outcome: SubmissionOutcomeSkipped},
	}}
	report.Finalize()
	assert.Equal(t, SubmissionStatusCompleted, report.Status)

	report.Steps = append(report.Steps, SubmissionStep{Name: SubmissionStepConsultationSchedules, Outcome: SubmissionOutcomeFailed})
	report.Finalize()
	assert.Equal(t, SubmissionStatusPartial, report.Status)

	report.Steps = SubmissionSteps{{Name: SubmissionStepCreateDoctor, Outcome: SubmissionOutcomeFailed}}
	report.Finalize()
	assert.Equal(t, SubmissionStatusFailed, report.Status)
}
