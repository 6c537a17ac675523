package gateway

import (
	"context"
	"errors"

	"forpharma-console/internal/domain/entity"
)

var (
	// ErrUpstreamUnauthorized is returned when the backend rejects the session's upstream token.
	ErrUpstreamUnauthorized = errors.New("upstream rejected credentials")
	// ErrUpstreamRejected matches any 4xx answer other than 401: the backend refused the request itself.
	ErrUpstreamRejected = errors.New("upstream rejected the request")
)

// ForPharmaGateway is the platform REST backend as seen by the console.
// Every call except Login, ActivateAccount and CreateOrganization authenticates with
// session.UpstreamToken.
type ForPharmaGateway interface {
	Login(ctx context.Context, email, password string) (*entity.LoginResult, error)
	ActivateAccount(ctx context.Context, email, password string) error
	CreateOrganization(ctx context.Context, organization entity.NewOrganization) (*entity.CreatedOrganization, error)

	ListUsers(ctx context.Context, session entity.Session) ([]entity.User, error)
	CreateUser(ctx context.Context, session entity.Session, user entity.NewUser) (*entity.User, error)

	ListDoctors(ctx context.Context, session entity.Session) ([]entity.Doctor, error)
	CreateDoctor(ctx context.Context, session entity.Session, draft entity.DoctorDraft) (*entity.CreatedDoctor, error)

	CreateHospitalAssociations(ctx context.Context, session entity.Session, associations []entity.HospitalAssociationRecord) error
	ListDoctorHospitalAssociations(ctx context.Context, session entity.Session, doctorID string) ([]entity.HospitalAssociationRecord, error)
	UpdateHospitalAssociation(ctx context.Context, session entity.Session, associationID string, association entity.HospitalAssociationRecord) error
	DeleteHospitalAssociation(ctx context.Context, session entity.Session, associationID string) error

	CreateConsultationSchedule(ctx context.Context, session entity.Session, doctorID string, consultations []entity.ConsultationRecord) error
	CreateChemistRelations(ctx context.Context, session entity.Session, relations []entity.ChemistRelation) error

	ListHospitals(ctx context.Context, session entity.Session) ([]entity.Hospital, error)
	CreateHospital(ctx context.Context, session entity.Session, hospital *entity.Hospital) (*entity.Hospital, error)
	ListChemists(ctx context.Context, session entity.Session) ([]entity.Chemist, error)
	CreateChemist(ctx context.Context, session entity.Session, chemist *entity.Chemist) (*entity.Chemist, error)
	ListDrugs(ctx context.Context, session entity.Session) ([]entity.Drug, error)
	CreateDrug(ctx context.Context, session entity.Session, drug *entity.Drug) (*entity.Drug, error)
}
