package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/usecase"
	"forpharma-console/pkg/response"
	"forpharma-console/pkg/validator"
)

// ReferenceHandler serves the doctor, hospital, chemist and drug lists.
type ReferenceHandler struct {
	referenceUsecase usecase.ReferenceUsecase
	validator        *validator.CustomValidator
}

func NewReferenceHandler(referenceUsecase usecase.ReferenceUsecase, validator *validator.CustomValidator) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUsecase: referenceUsecase,
		validator:        validator,
	}
}

// GetAllDoctors lists the organization's doctors, filtered by ?search=
func (h *ReferenceHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	doctors, err := h.referenceUsecase.ListDoctors(r.Context(), session, r.URL.Query().Get("search"))
	if err != nil {
		upstreamError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *ReferenceHandler) GetAllHospitals(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	hospitals, err := h.referenceUsecase.ListHospitals(r.Context(), session)
	if err != nil {
		upstreamError(w, err, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *ReferenceHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.referenceUsecase.CreateHospital(r.Context(), session, &req)
	if err != nil {
		upstreamError(w, err, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *ReferenceHandler) GetAllChemists(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	chemists, err := h.referenceUsecase.ListChemists(r.Context(), session)
	if err != nil {
		upstreamError(w, err, "Failed to get chemists")
		return
	}

	response.Success(w, http.StatusOK, "Chemists retrieved successfully", chemists)
}

func (h *ReferenceHandler) CreateChemist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateChemistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	chemist, err := h.referenceUsecase.CreateChemist(r.Context(), session, &req)
	if err != nil {
		upstreamError(w, err, "Failed to create chemist")
		return
	}

	response.Success(w, http.StatusCreated, "Chemist created successfully", chemist)
}

func (h *ReferenceHandler) GetAllDrugs(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	drugs, err := h.referenceUsecase.ListDrugs(r.Context(), session)
	if err != nil {
		upstreamError(w, err, "Failed to get drugs")
		return
	}

	response.Success(w, http.StatusOK, "Drugs retrieved successfully", drugs)
}

func (h *ReferenceHandler) CreateDrug(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateDrugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}
	if req.Price.IsNegative() {
		response.ValidationError(w, map[string]string{"price": "price must not be negative"})
		return
	}

	drug, err := h.referenceUsecase.CreateDrug(r.Context(), session, &req)
	if err != nil {
		upstreamError(w, err, "Failed to create drug")
		return
	}

	response.Success(w, http.StatusCreated, "Drug created successfully", drug)
}

// upstreamError answers failures that come from the platform backend.
func upstreamError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, gateway.ErrUpstreamUnauthorized):
		response.Unauthorized(w, "Platform session expired, please login again")
	case errors.Is(err, gateway.ErrUpstreamRejected):
		response.BadRequest(w, err.Error())
	default:
		response.BadGateway(w, message)
	}
}
