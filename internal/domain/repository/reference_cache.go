package repository

import (
	"context"
	"time"
)

// Reference data kinds cached per organization.
const (
	ReferenceDoctors   = "doctors"
	ReferenceHospitals = "hospitals"
	ReferenceChemists  = "chemists"
	ReferenceDrugs     = "drugs"
)

type ReferenceCache interface {
	// Get decodes the cached list into out and reports whether it was present.
	Get(ctx context.Context, organizationID, kind string, out interface{}) (bool, error)
	Set(ctx context.Context, organizationID, kind string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, organizationID string, kinds ...string) error
}
