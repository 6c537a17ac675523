package handler

import (
	"net/http"
	"strconv"

	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/usecase"
	"forpharma-console/pkg/response"
	"forpharma-console/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SubmissionReportHandler struct {
	reportUsecase usecase.SubmissionReportUsecase
	validator     *validator.CustomValidator
}

func NewSubmissionReportHandler(reportUsecase usecase.SubmissionReportUsecase, validator *validator.CustomValidator) *SubmissionReportHandler {
	return &SubmissionReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

// GetAllSubmissions lists submission reports
// @Summary List submission reports
// @Tags Submissions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "completed, partial or failed"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /submissions [get]
func (h *SubmissionReportHandler) GetAllSubmissions(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := dto.SubmissionReportListRequest{
		Page:   1,
		Limit:  10,
		Status: query.Get("status"),
		From:   query.Get("from"),
		To:     query.Get("to"),
	}
	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid page")
			return
		}
		req.Page = page
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Invalid limit")
			return
		}
		req.Limit = limit
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reports, total, err := h.reportUsecase.List(r.Context(), session, &req)
	if err != nil {
		if err == usecase.ErrInvalidDateFormat {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get submission reports")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Submission reports retrieved successfully", reports, response.NewMeta(req.Page, req.Limit, total))
}

func (h *SubmissionReportHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid submission report ID")
		return
	}

	report, err := h.reportUsecase.Get(r.Context(), session, id)
	if err != nil {
		if err == usecase.ErrSubmissionReportNotFound {
			response.NotFound(w, "Submission report not found")
			return
		}
		response.InternalServerError(w, "Failed to get submission report")
		return
	}

	response.Success(w, http.StatusOK, "Submission report retrieved successfully", report)
}
