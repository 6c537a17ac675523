package wizard

import (
	"time"

	"forpharma-console/internal/domain/entity"
)

// FlattenSchedule emits one record per typed slot, Sunday first, in slot order.
// Slots without a consultation type are drafts and are left out.
func FlattenSchedule(hospitalID string, schedule entity.WeeklySchedule) []entity.ConsultationRecord {
	records := []entity.ConsultationRecord{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		for _, slot := range schedule.Day(d) {
			if slot.ConsultationType == entity.ConsultationTypeUnset {
				continue
			}
			records = append(records, entity.ConsultationRecord{
				DayOfWeek:        entity.WeekdayName(d),
				StartTime:        slot.From,
				EndTime:          slot.To,
				ConsultationType: slot.ConsultationType,
				IsActive:         true,
				HospitalID:       hospitalID,
			})
		}
	}
	return records
}

// FlattenAssociations concatenates the schedules of all associations in list order.
func FlattenAssociations(associations []entity.HospitalAssociationDraft) []entity.ConsultationRecord {
	records := []entity.ConsultationRecord{}
	for _, a := range associations {
		records = append(records, FlattenSchedule(a.HospitalID, a.Schedule)...)
	}
	return records
}

// Consultations returns the records to submit under the given mode.
func Consultations(s *entity.WizardState, mode entity.ConsultationMode) []entity.ConsultationRecord {
	if mode == entity.ConsultationModeLatest {
		if s.LatestConsultations == nil {
			return []entity.ConsultationRecord{}
		}
		return s.LatestConsultations
	}
	return FlattenAssociations(s.Associations)
}

func (w *Wizard) Consultations() []entity.ConsultationRecord {
	return Consultations(w.state, w.mode)
}
