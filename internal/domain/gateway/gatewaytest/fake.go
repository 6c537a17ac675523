// Package gatewaytest provides an in-memory ForPharmaGateway for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
)

// Call is one recorded gateway invocation.
type Call struct {
	Method  string
	Payload interface{}
}

type ScheduleCall struct {
	DoctorID      string
	Consultations []entity.ConsultationRecord
}

// Fake records every call. Set the Err fields to make a method fail and
// CreatedDoctor to control the doctor creation answer.
type Fake struct {
	mu sync.Mutex

	CreatedDoctor *entity.CreatedDoctor
	LoginResult   *entity.LoginResult

	Doctors      []entity.Doctor
	Hospitals    []entity.Hospital
	Chemists     []entity.Chemist
	Drugs        []entity.Drug
	Users        []entity.User
	Associations map[string][]entity.HospitalAssociationRecord

	LoginErr        error
	CreateDoctorErr error
	AssociationsErr error
	ScheduleErr     error
	RelationsErr    error
	ListErr         error
	UserErr         error

	Calls []Call
}

var _ gateway.ForPharmaGateway = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		CreatedDoctor: &entity.CreatedDoctor{Success: true, ID: "doc-1"},
		Associations:  map[string][]entity.HospitalAssociationRecord{},
	}
}

func (f *Fake) record(method string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Method: method, Payload: payload})
}

// CallsTo returns the recorded calls of one method in order.
func (f *Fake) CallsTo(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the method names in call order.
func (f *Fake) Methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Method
	}
	return out
}

func (f *Fake) Login(ctx context.Context, email, password string) (*entity.LoginResult, error) {
	f.record("Login", email)
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginResult == nil {
		return nil, gateway.ErrUpstreamUnauthorized
	}
	return f.LoginResult, nil
}

func (f *Fake) ActivateAccount(ctx context.Context, email, password string) error {
	f.record("ActivateAccount", email)
	return f.UserErr
}

func (f *Fake) CreateOrganization(ctx context.Context, organization entity.NewOrganization) (*entity.CreatedOrganization, error) {
	f.record("CreateOrganization", organization)
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	return &entity.CreatedOrganization{OrganizationID: "org-new", AdminUserID: "admin-new"}, nil
}

func (f *Fake) ListUsers(ctx context.Context, session entity.Session) ([]entity.User, error) {
	f.record("ListUsers", session.OrganizationID)
	return f.Users, f.ListErr
}

func (f *Fake) CreateUser(ctx context.Context, session entity.Session, user entity.NewUser) (*entity.User, error) {
	f.record("CreateUser", user)
	if f.UserErr != nil {
		return nil, f.UserErr
	}
	return &entity.User{
		ID:        fmt.Sprintf("user-%d", len(f.CallsTo("CreateUser"))),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}

func (f *Fake) ListDoctors(ctx context.Context, session entity.Session) ([]entity.Doctor, error) {
	f.record("ListDoctors", nil)
	return f.Doctors, f.ListErr
}

func (f *Fake) CreateDoctor(ctx context.Context, session entity.Session, draft entity.DoctorDraft) (*entity.CreatedDoctor, error) {
	f.record("CreateDoctor", draft)
	if f.CreateDoctorErr != nil {
		return nil, f.CreateDoctorErr
	}
	return f.CreatedDoctor, nil
}

func (f *Fake) CreateHospitalAssociations(ctx context.Context, session entity.Session, associations []entity.HospitalAssociationRecord) error {
	f.record("CreateHospitalAssociations", associations)
	return f.AssociationsErr
}

func (f *Fake) ListDoctorHospitalAssociations(ctx context.Context, session entity.Session, doctorID string) ([]entity.HospitalAssociationRecord, error) {
	f.record("ListDoctorHospitalAssociations", doctorID)
	return f.Associations[doctorID], f.ListErr
}

func (f *Fake) UpdateHospitalAssociation(ctx context.Context, session entity.Session, associationID string, association entity.HospitalAssociationRecord) error {
	f.record("UpdateHospitalAssociation", association)
	return f.AssociationsErr
}

func (f *Fake) DeleteHospitalAssociation(ctx context.Context, session entity.Session, associationID string) error {
	f.record("DeleteHospitalAssociation", associationID)
	return f.AssociationsErr
}

func (f *Fake) CreateConsultationSchedule(ctx context.Context, session entity.Session, doctorID string, consultations []entity.ConsultationRecord) error {
	f.record("CreateConsultationSchedule", ScheduleCall{DoctorID: doctorID, Consultations: consultations})
	return f.ScheduleErr
}

func (f *Fake) CreateChemistRelations(ctx context.Context, session entity.Session, relations []entity.ChemistRelation) error {
	f.record("CreateChemistRelations", relations)
	return f.RelationsErr
}

func (f *Fake) ListHospitals(ctx context.Context, session entity.Session) ([]entity.Hospital, error) {
	f.record("ListHospitals", nil)
	return f.Hospitals, f.ListErr
}

func (f *Fake) CreateHospital(ctx context.Context, session entity.Session, hospital *entity.Hospital) (*entity.Hospital, error) {
	f.record("CreateHospital", hospital)
	created := *hospital
	created.ID = fmt.Sprintf("hosp-%d", len(f.CallsTo("CreateHospital")))
	return &created, nil
}

func (f *Fake) ListChemists(ctx context.Context, session entity.Session) ([]entity.Chemist, error) {
	f.record("ListChemists", nil)
	return f.Chemists, f.ListErr
}

func (f *Fake) CreateChemist(ctx context.Context, session entity.Session, chemist *entity.Chemist) (*entity.Chemist, error) {
	f.record("CreateChemist", chemist)
	created := *chemist
	created.ID = fmt.Sprintf("chem-%d", len(f.CallsTo("CreateChemist")))
	return &created, nil
}

func (f *Fake) ListDrugs(ctx context.Context, session entity.Session) ([]entity.Drug, error) {
	f.record("ListDrugs", nil)
	return f.Drugs, f.ListErr
}

func (f *Fake) CreateDrug(ctx context.Context, session entity.Session, drug *entity.Drug) (*entity.Drug, error) {
	f.record("CreateDrug", drug)
	created := *drug
	created.ID = fmt.Sprintf("drug-%d", len(f.CallsTo("CreateDrug")))
	return &created, nil
}
