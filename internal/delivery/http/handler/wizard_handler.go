package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/usecase"
	"forpharma-console/internal/wizard"
	"forpharma-console/pkg/response"
	"forpharma-console/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// WizardHandler drives the doctor onboarding wizard. Every mutation answers with the
// full wizard so the client never keeps its own copy.
type WizardHandler struct {
	onboardingUsecase usecase.OnboardingUsecase
	validator         *validator.CustomValidator
}

func NewWizardHandler(onboardingUsecase usecase.OnboardingUsecase, validator *validator.CustomValidator) *WizardHandler {
	return &WizardHandler{
		onboardingUsecase: onboardingUsecase,
		validator:         validator,
	}
}

// OpenWizard starts a wizard, on an existing doctor when doctor_id is given
// @Summary Open onboarding wizard
// @Tags Wizard
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OpenWizardRequest false "Open Wizard Request"
// @Success 201 {object} response.Response
// @Router /wizards [post]
func (h *WizardHandler) OpenWizard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.OpenWizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	resp, err := h.onboardingUsecase.Open(r.Context(), session, &req)
	if err != nil {
		wizardError(w, err, "Failed to open wizard")
		return
	}

	response.Success(w, http.StatusCreated, "Wizard opened successfully", resp)
}

func (h *WizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.Get(r.Context(), session, id)
	if err != nil {
		wizardError(w, err, "Failed to get wizard")
		return
	}

	response.Success(w, http.StatusOK, "Wizard retrieved successfully", resp)
}

func (h *WizardHandler) CloseWizard(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	if err := h.onboardingUsecase.Close(r.Context(), session, id); err != nil {
		wizardError(w, err, "Failed to close wizard")
		return
	}

	response.Success(w, http.StatusOK, "Wizard closed successfully", nil)
}

func (h *WizardHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateDoctorDraftRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.onboardingUsecase.UpdateDoctor(r.Context(), session, id, &req)
	if err != nil {
		wizardError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", resp)
}

func (h *WizardHandler) SetAssociationDraft(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	var req dto.AssociationDraftRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.onboardingUsecase.SetAssociationDraft(r.Context(), session, id, &req)
	if err != nil {
		wizardError(w, err, "Failed to update association draft")
		return
	}

	response.Success(w, http.StatusOK, "Association draft updated successfully", resp)
}

func (h *WizardHandler) CommitAssociation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.CommitAssociation(r.Context(), session, id)
	if err != nil {
		wizardError(w, err, "Failed to save association")
		return
	}

	response.Success(w, http.StatusOK, "Association saved successfully", resp)
}

func (h *WizardHandler) RemoveAssociation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.RemoveAssociation(r.Context(), session, id, index)
	if err != nil {
		wizardError(w, err, "Failed to remove association")
		return
	}

	response.Success(w, http.StatusOK, "Association removed successfully", resp)
}

func (h *WizardHandler) EditAssociation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	index, ok := pathInt(w, r, "index")
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.EditAssociation(r.Context(), session, id, index)
	if err != nil {
		wizardError(w, err, "Failed to edit association")
		return
	}

	response.Success(w, http.StatusOK, "Association loaded for editing", resp)
}

func (h *WizardHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.AddSlot(r.Context(), session, id, mux.Vars(r)["day"])
	if err != nil {
		wizardError(w, err, "Failed to add consultation slot")
		return
	}

	response.Success(w, http.StatusCreated, "Consultation slot added successfully", resp)
}

func (h *WizardHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	slot, ok := pathInt(w, r, "slot")
	if !ok {
		return
	}

	var req dto.UpdateSlotRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.onboardingUsecase.UpdateSlot(r.Context(), session, id, mux.Vars(r)["day"], slot, &req)
	if err != nil {
		wizardError(w, err, "Failed to update consultation slot")
		return
	}

	response.Success(w, http.StatusOK, "Consultation slot updated successfully", resp)
}

func (h *WizardHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	slot, ok := pathInt(w, r, "slot")
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.RemoveSlot(r.Context(), session, id, mux.Vars(r)["day"], slot)
	if err != nil {
		wizardError(w, err, "Failed to remove consultation slot")
		return
	}

	response.Success(w, http.StatusOK, "Consultation slot removed successfully", resp)
}

func (h *WizardHandler) ToggleChemist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.ToggleChemist(r.Context(), session, id, mux.Vars(r)["chemistId"])
	if err != nil {
		wizardError(w, err, "Failed to toggle chemist")
		return
	}

	response.Success(w, http.StatusOK, "Chemist selection updated", resp)
}

func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.Next(r.Context(), session, id)
	if err != nil {
		wizardError(w, err, "Failed to move to the next step")
		return
	}

	response.Success(w, http.StatusOK, "Moved to the next step", resp)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.Back(r.Context(), session, id)
	if err != nil {
		wizardError(w, err, "Failed to move to the previous step")
		return
	}

	message := "Moved to the previous step"
	if resp.Exited {
		message = "Wizard closed"
	}
	response.Success(w, http.StatusOK, message, resp)
}

func (h *WizardHandler) GoToStep(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}
	step, ok := pathInt(w, r, "step")
	if !ok {
		return
	}

	resp, err := h.onboardingUsecase.GoToStep(r.Context(), session, id, step)
	if err != nil {
		wizardError(w, err, "Failed to change step")
		return
	}

	response.Success(w, http.StatusOK, "Step changed", resp)
}

// Submit runs the onboarding. Backend failures are inside the report, so any
// finished saga answers 200 with the report's status.
// @Summary Submit onboarding wizard
// @Tags Wizard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /wizards/{id}/submit [post]
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := wizardID(w, r)
	if !ok {
		return
	}

	report, err := h.onboardingUsecase.Submit(r.Context(), session, id)
	if err != nil {
		wizardError(w, err, "Failed to submit wizard")
		return
	}

	response.Success(w, http.StatusOK, "Onboarding submitted with status "+report.Status, report)
}

func (h *WizardHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

func wizardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid wizard ID")
		return uuid.Nil, false
	}
	return id, true
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func wizardError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrWizardNotFound):
		response.NotFound(w, "Wizard not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrSubmissionInProgress),
		errors.Is(err, usecase.ErrDuplicateSubmission),
		errors.Is(err, wizard.ErrAtLastStep),
		errors.Is(err, wizard.ErrStepUnreachable):
		response.Conflict(w, err.Error())
	case errors.Is(err, wizard.ErrStepInvalid),
		errors.Is(err, wizard.ErrNotReadyToSubmit):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, wizard.ErrUnknownField),
		errors.Is(err, wizard.ErrInvalidExperience),
		errors.Is(err, wizard.ErrInvalidDate),
		errors.Is(err, wizard.ErrInvalidTime),
		errors.Is(err, wizard.ErrInvalidBool),
		errors.Is(err, wizard.ErrIndexOutOfRange),
		errors.Is(err, wizard.ErrUnknownDay),
		errors.Is(err, wizard.ErrInvalidConsultationType),
		errors.Is(err, wizard.ErrChemistRequired):
		response.BadRequest(w, err.Error())
	case errors.Is(err, gateway.ErrUpstreamUnauthorized):
		response.Unauthorized(w, "Platform session expired, please login again")
	default:
		response.InternalServerError(w, message)
	}
}
