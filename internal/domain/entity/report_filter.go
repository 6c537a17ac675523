package entity

import "time"

// SubmissionReportFilter is a domain-level filter for listing submission reports.
// Used by repository layer to avoid coupling with delivery DTOs.
type SubmissionReportFilter struct {
	OrganizationID string
	UserID         string           // Empty lists every user of the organization
	Status         SubmissionStatus // Empty means any status
	From           *time.Time
	To             *time.Time
}
