package converter

import (
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
)

// SubmissionReportToResponse converts a SubmissionReport entity to SubmissionReportResponse DTO
func SubmissionReportToResponse(report *entity.SubmissionReport) *dto.SubmissionReportResponse {
	if report == nil {
		return nil
	}

	steps := make([]dto.SubmissionStepResponse, len(report.Steps))
	for i, s := range report.Steps {
		steps[i] = dto.SubmissionStepResponse{
			Name:    string(s.Name),
			Outcome: string(s.Outcome),
			Records: s.Records,
			Error:   s.Error,
		}
	}

	return &dto.SubmissionReportResponse{
		ID:         report.ID,
		WizardID:   report.WizardID,
		UserID:     report.UserID,
		DoctorID:   report.DoctorID,
		DoctorName: report.DoctorName,
		EditMode:   report.EditMode,
		Status:     string(report.Status),
		Steps:      steps,
		CreatedAt:  report.CreatedAt,
	}
}

func SubmissionReportsToResponses(reports []entity.SubmissionReport) []dto.SubmissionReportResponse {
	responses := make([]dto.SubmissionReportResponse, len(reports))
	for i := range reports {
		responses[i] = *SubmissionReportToResponse(&reports[i])
	}
	return responses
}
