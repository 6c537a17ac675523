package wizard

import (
	"strconv"
	"strings"
	"time"

	"forpharma-console/internal/domain/entity"
)

// Doctor draft field names, as sent by the console form.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldSpecialization  = "specialization"
	FieldDesignation     = "designation"
	FieldQualification   = "qualification"
	FieldExperienceYears = "experienceYears"
	FieldDescription     = "description"
)

// NormalizeExperienceYears strips leading zeros and maps blank input to unset rather than 0.
func NormalizeExperienceYears(raw string) (*int, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return nil, ErrInvalidExperience
		}
	}

	cleaned = strings.TrimLeft(cleaned, "0")
	if cleaned == "" {
		cleaned = "0"
	}
	years, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil, ErrInvalidExperience
	}
	return &years, nil
}

// SetDoctorField replaces one doctor draft field.
func (w *Wizard) SetDoctorField(field, value string) error {
	return setDoctorField(&w.state.Doctor, field, value)
}

// SetDoctorFields applies all updates or none of them.
func (w *Wizard) SetDoctorFields(fields map[string]string) error {
	draft := w.state.Doctor
	for field, value := range fields {
		if err := setDoctorField(&draft, field, value); err != nil {
			return err
		}
	}
	w.state.Doctor = draft
	return nil
}

func setDoctorField(d *entity.DoctorDraft, field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldSpecialization:
		d.Specialization = value
	case FieldDesignation:
		d.Designation = value
	case FieldQualification:
		d.Qualification = value
	case FieldDescription:
		d.Description = value
	case FieldExperienceYears, "experience_years":
		years, err := NormalizeExperienceYears(value)
		if err != nil {
			return err
		}
		d.ExperienceYears = years
	default:
		return ErrUnknownField
	}
	return nil
}

// LoadDoctor pre-populates the wizard from an existing doctor.
func (w *Wizard) LoadDoctor(doctor entity.Doctor, associations []entity.HospitalAssociationDraft) {
	resetForm(w.state)
	w.state.DoctorID = doctor.ID
	w.state.Doctor = entity.DoctorDraft{
		Name:            doctor.Name,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		Specialization:  doctor.Specialization,
		Designation:     doctor.Designation,
		Qualification:   doctor.Qualification,
		ExperienceYears: doctor.ExperienceYears,
		Description:     doctor.Description,
	}
	for _, a := range associations {
		w.state.Associations = append(w.state.Associations, a.Clone())
	}
}

// ToggleChemist adds or removes a chemist and reports whether it is now selected.
func (w *Wizard) ToggleChemist(chemistID string) (bool, error) {
	chemistID = strings.TrimSpace(chemistID)
	if chemistID == "" {
		return false, ErrChemistRequired
	}

	for i, id := range w.state.SelectedChemists {
		if id == chemistID {
			w.state.SelectedChemists = append(w.state.SelectedChemists[:i], w.state.SelectedChemists[i+1:]...)
			return false, nil
		}
	}
	w.state.SelectedChemists = append(w.state.SelectedChemists, chemistID)
	return true, nil
}

func validDate(value string) bool {
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
