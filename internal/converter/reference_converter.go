package converter

import (
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
)

func HospitalToResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}
	return &dto.HospitalResponse{
		ID:          h.ID,
		Name:        h.Name,
		Address:     h.Address,
		City:        h.City,
		State:       h.State,
		Pincode:     h.Pincode,
		Email:       h.Email,
		Website:     h.Website,
		Description: h.Description,
		Status:      h.Status,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i])
	}
	return responses
}

func HospitalRequestToEntity(req *dto.CreateHospitalRequest) *entity.Hospital {
	return &entity.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
	}
}

func ChemistToResponse(c *entity.Chemist) *dto.ChemistResponse {
	if c == nil {
		return nil
	}
	return &dto.ChemistResponse{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Pincode:       c.Pincode,
		VisitingHours: c.VisitingHours,
		Status:        c.Status,
	}
}

func ChemistsToResponses(chemists []entity.Chemist) []dto.ChemistResponse {
	responses := make([]dto.ChemistResponse, len(chemists))
	for i := range chemists {
		responses[i] = *ChemistToResponse(&chemists[i])
	}
	return responses
}

func ChemistRequestToEntity(req *dto.CreateChemistRequest) *entity.Chemist {
	return &entity.Chemist{
		Name:              req.Name,
		Type:              req.Type,
		ChemistChainID:    req.ChemistChainID,
		TerritoryID:       req.TerritoryID,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Pincode:           req.Pincode,
		Description:       req.Description,
		ProfilePictureURL: req.ProfilePictureURL,
		VisitingHours:     req.VisitingHours,
	}
}

func DrugToResponse(d *entity.Drug) *dto.DrugResponse {
	if d == nil {
		return nil
	}
	return &dto.DrugResponse{
		ID:           d.ID,
		Name:         d.Name,
		Composition:  d.Composition,
		Manufacturer: d.Manufacturer,
		Price:        d.Price,
		Category:     d.Category,
		Type:         d.Type,
		IsAvailable:  d.IsAvailable,
	}
}

func DrugsToResponses(drugs []entity.Drug) []dto.DrugResponse {
	responses := make([]dto.DrugResponse, len(drugs))
	for i := range drugs {
		responses[i] = *DrugToResponse(&drugs[i])
	}
	return responses
}

func DrugRequestToEntity(req *dto.CreateDrugRequest) *entity.Drug {
	return &entity.Drug{
		Name:                req.Name,
		Composition:         req.Composition,
		Manufacturer:        req.Manufacturer,
		Indications:         req.Indications,
		SideEffects:         req.SideEffects,
		SafetyAdvice:        req.SafetyAdvice,
		DosageForms:         req.DosageForms,
		Price:               req.Price,
		Schedule:            req.Schedule,
		RegulatoryApprovals: req.RegulatoryApprovals,
		Category:            req.Category,
		Type:                req.Type,
		IsAvailable:         req.IsAvailable,
		Images:              req.Images,
	}
}
