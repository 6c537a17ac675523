package converter

import (
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/wizard"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		Specialization:  doctor.Specialization,
		Designation:     doctor.Designation,
		Qualification:   doctor.Qualification,
		ExperienceYears: doctor.ExperienceYears,
		Description:     doctor.Description,
		CreatedAt:       doctor.CreatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorDraftUpdateToFields converts the PATCH body to wizard field updates,
// keeping only the fields that were sent
func DoctorDraftUpdateToFields(req *dto.UpdateDoctorDraftRequest) map[string]string {
	fields := make(map[string]string)
	set := func(name string, value *string) {
		if value != nil {
			fields[name] = *value
		}
	}

	set(wizard.FieldName, req.Name)
	set(wizard.FieldEmail, req.Email)
	set(wizard.FieldPhone, req.Phone)
	set(wizard.FieldSpecialization, req.Specialization)
	set(wizard.FieldDesignation, req.Designation)
	set(wizard.FieldQualification, req.Qualification)
	set(wizard.FieldExperienceYears, req.ExperienceYears)
	set(wizard.FieldDescription, req.Description)
	return fields
}
