package wizard

import (
	"strconv"

	"forpharma-console/internal/domain/entity"
)

// Consultation slot field names.
const (
	SlotFieldConsultationType = "consultationType"
	SlotFieldFrom             = "from"
	SlotFieldTo               = "to"
)

// AssociationDetails are the association draft fields outside the schedule.
type AssociationDetails struct {
	HospitalID           string
	Department           string
	Position             string
	IsPrimary            bool
	AssociationStartDate string
	AssociationEndDate   string
}

// SetAssociationDetails replaces the draft's details and keeps its schedule.
func (w *Wizard) SetAssociationDetails(d AssociationDetails) error {
	if !validDate(d.AssociationStartDate) || !validDate(d.AssociationEndDate) {
		return ErrInvalidDate
	}

	draft := &w.state.AssociationDraft
	draft.HospitalID = d.HospitalID
	draft.Department = d.Department
	draft.Position = d.Position
	draft.IsPrimary = d.IsPrimary
	draft.AssociationStartDate = d.AssociationStartDate
	draft.AssociationEndDate = d.AssociationEndDate
	return nil
}

// SetAssociationField replaces a single draft detail.
func (w *Wizard) SetAssociationField(field, value string) error {
	draft := &w.state.AssociationDraft
	switch field {
	case "hospitalId":
		draft.HospitalID = value
	case "department":
		draft.Department = value
	case "position":
		draft.Position = value
	case "isPrimary":
		primary, err := strconv.ParseBool(value)
		if err != nil {
			return ErrInvalidBool
		}
		draft.IsPrimary = primary
	case "associationStartDate":
		if !validDate(value) {
			return ErrInvalidDate
		}
		draft.AssociationStartDate = value
	case "associationEndDate":
		if !validDate(value) {
			return ErrInvalidDate
		}
		draft.AssociationEndDate = value
	default:
		return ErrUnknownField
	}
	return nil
}

// AddOrUpdateAssociation commits the draft: it replaces the entry under edit, or
// appends a new one. A draft without a hospital leaves the list untouched.
func (w *Wizard) AddOrUpdateAssociation() error {
	s := w.state
	if s.AssociationDraft.HospitalID == "" {
		return ErrHospitalRequired
	}

	committed := s.AssociationDraft.Clone()
	if s.EditIndex != nil && *s.EditIndex >= 0 && *s.EditIndex < len(s.Associations) {
		s.Associations[*s.EditIndex] = committed
	} else {
		s.Associations = append(s.Associations, committed)
	}
	s.EditIndex = nil
	s.LatestConsultations = FlattenSchedule(committed.HospitalID, committed.Schedule)
	s.AssociationDraft = entity.HospitalAssociationDraft{}
	return nil
}

// RemoveAssociation deletes entry i. Removing the entry under edit leaves edit mode.
func (w *Wizard) RemoveAssociation(i int) error {
	s := w.state
	if i < 0 || i >= len(s.Associations) {
		return ErrIndexOutOfRange
	}

	if id := s.Associations[i].AssociationID; id != "" {
		s.RemovedAssociationIDs = append(s.RemovedAssociationIDs, id)
	}
	s.Associations = append(s.Associations[:i], s.Associations[i+1:]...)

	if s.EditIndex != nil {
		switch {
		case *s.EditIndex == i:
			s.EditIndex = nil
			s.AssociationDraft = entity.HospitalAssociationDraft{}
		case *s.EditIndex > i:
			shifted := *s.EditIndex - 1
			s.EditIndex = &shifted
		}
	}
	return nil
}

// BeginEdit loads entry i into the draft.
func (w *Wizard) BeginEdit(i int) error {
	s := w.state
	if i < 0 || i >= len(s.Associations) {
		return ErrIndexOutOfRange
	}
	s.AssociationDraft = s.Associations[i].Clone()
	s.EditIndex = &i
	return nil
}

// AddConsultationSlot appends a default slot to the draft's day and returns its index.
func (w *Wizard) AddConsultationSlot(day string) (int, error) {
	d, ok := entity.ParseWeekday(day)
	if !ok {
		return 0, ErrUnknownDay
	}
	schedule := &w.state.AssociationDraft.Schedule
	schedule[d] = append(schedule[d], entity.NewConsultationSlot())
	return len(schedule[d]) - 1, nil
}

func (w *Wizard) UpdateConsultationSlot(day string, slot int, field, value string) error {
	d, ok := entity.ParseWeekday(day)
	if !ok {
		return ErrUnknownDay
	}
	slots := w.state.AssociationDraft.Schedule[d]
	if slot < 0 || slot >= len(slots) {
		return ErrIndexOutOfRange
	}

	switch field {
	case SlotFieldConsultationType:
		t := entity.ConsultationType(value)
		if !t.Valid() {
			return ErrInvalidConsultationType
		}
		slots[slot].ConsultationType = t
	case SlotFieldFrom:
		if !validClock(value) {
			return ErrInvalidTime
		}
		slots[slot].From = value
	case SlotFieldTo:
		if !validClock(value) {
			return ErrInvalidTime
		}
		slots[slot].To = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (w *Wizard) RemoveConsultationSlot(day string, slot int) error {
	d, ok := entity.ParseWeekday(day)
	if !ok {
		return ErrUnknownDay
	}
	schedule := &w.state.AssociationDraft.Schedule
	if slot < 0 || slot >= len(schedule[d]) {
		return ErrIndexOutOfRange
	}
	schedule[d] = append(schedule[d][:slot], schedule[d][slot+1:]...)
	return nil
}
