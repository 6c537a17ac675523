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

// UserHandler serves organization members, organization signup and account activation.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// GetAllUsers lists the organization's members, filtered by ?search=
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	users, err := h.userUsecase.ListUsers(r.Context(), session, r.URL.Query().Get("search"))
	if err != nil {
		upstreamError(w, err, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.CreateUser(r.Context(), session, &req)
	if err != nil {
		upstreamError(w, err, "Failed to create user")
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// Signup registers a new organization with its first admin
// @Summary Organization signup
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.userUsecase.Signup(r.Context(), &req)
	if err != nil {
		publicUpstreamError(w, err, "Failed to create organization")
		return
	}

	response.Success(w, http.StatusCreated, "Organization created successfully", created)
}

// ActivateAccount sets the password of an invited member
// @Summary Activate account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ActivateAccountRequest true "Activate Account Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/activate [post]
func (h *UserHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.ActivateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.userUsecase.ActivateAccount(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrWeakPassword) {
			response.BadRequest(w, "Please choose a stronger password")
			return
		}
		publicUpstreamError(w, err, "Failed to activate account")
		return
	}

	response.Success(w, http.StatusOK, "Account activated, you can now log in", nil)
}

// publicUpstreamError is upstreamError for routes without a console session.
func publicUpstreamError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, gateway.ErrUpstreamRejected) || errors.Is(err, gateway.ErrUpstreamUnauthorized) {
		response.BadRequest(w, err.Error())
		return
	}
	response.BadGateway(w, message)
}
