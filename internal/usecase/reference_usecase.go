package usecase

import (
	"context"
	"strings"

	"forpharma-console/internal/converter"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/domain/repository"
	"forpharma-console/internal/service"

	"github.com/sirupsen/logrus"
)

// ReferenceUsecase serves the lists the wizard picks from and the quick-create forms
// next to them. Reads go through the reference cache.
type ReferenceUsecase interface {
	ListDoctors(ctx context.Context, session entity.Session, search string) (*dto.DoctorListResponse, error)
	ListHospitals(ctx context.Context, session entity.Session) (*dto.HospitalListResponse, error)
	CreateHospital(ctx context.Context, session entity.Session, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	ListChemists(ctx context.Context, session entity.Session) (*dto.ChemistListResponse, error)
	CreateChemist(ctx context.Context, session entity.Session, req *dto.CreateChemistRequest) (*dto.ChemistResponse, error)
	ListDrugs(ctx context.Context, session entity.Session) (*dto.DrugListResponse, error)
	CreateDrug(ctx context.Context, session entity.Session, req *dto.CreateDrugRequest) (*dto.DrugResponse, error)
}

type referenceUsecase struct {
	log           *logrus.Logger
	gateway       gateway.ForPharmaGateway
	referenceSync *service.ReferenceSyncService
	auditService  service.AuditService
}

func NewReferenceUsecase(
	log *logrus.Logger,
	gw gateway.ForPharmaGateway,
	referenceSync *service.ReferenceSyncService,
	auditService service.AuditService,
) ReferenceUsecase {
	return &referenceUsecase{
		log:           log,
		gateway:       gw,
		referenceSync: referenceSync,
		auditService:  auditService,
	}
}

// ListDoctors filters on name or specialization, case-insensitively.
func (u *referenceUsecase) ListDoctors(ctx context.Context, session entity.Session, search string) (*dto.DoctorListResponse, error) {
	doctors, err := u.referenceSync.Doctors(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		filtered := make([]entity.Doctor, 0, len(doctors))
		for _, d := range doctors {
			if strings.Contains(strings.ToLower(d.Name), search) ||
				strings.Contains(strings.ToLower(d.Specialization), search) {
				filtered = append(filtered, d)
			}
		}
		doctors = filtered
	}

	responses := converter.DoctorsToResponses(doctors)
	return &dto.DoctorListResponse{Doctors: responses, Total: len(responses)}, nil
}

func (u *referenceUsecase) ListHospitals(ctx context.Context, session entity.Session) (*dto.HospitalListResponse, error) {
	hospitals, err := u.referenceSync.Hospitals(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	responses := converter.HospitalsToResponses(hospitals)
	return &dto.HospitalListResponse{Hospitals: responses, Total: len(responses)}, nil
}

func (u *referenceUsecase) CreateHospital(ctx context.Context, session entity.Session, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := u.gateway.CreateHospital(ctx, session, converter.HospitalRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	u.invalidate(ctx, session, repository.ReferenceHospitals)
	resp := converter.HospitalToResponse(hospital)
	_ = u.auditService.LogCreate(ctx, session, entity.AuditActionHospitalCreate, "hospital", hospital.ID, resp)
	return resp, nil
}

func (u *referenceUsecase) ListChemists(ctx context.Context, session entity.Session) (*dto.ChemistListResponse, error) {
	chemists, err := u.referenceSync.Chemists(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list chemists: %+v", err)
		return nil, err
	}
	responses := converter.ChemistsToResponses(chemists)
	return &dto.ChemistListResponse{Chemists: responses, Total: len(responses)}, nil
}

func (u *referenceUsecase) CreateChemist(ctx context.Context, session entity.Session, req *dto.CreateChemistRequest) (*dto.ChemistResponse, error) {
	chemist, err := u.gateway.CreateChemist(ctx, session, converter.ChemistRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create chemist: %+v", err)
		return nil, err
	}

	u.invalidate(ctx, session, repository.ReferenceChemists)
	resp := converter.ChemistToResponse(chemist)
	_ = u.auditService.LogCreate(ctx, session, entity.AuditActionChemistCreate, "chemist", chemist.ID, resp)
	return resp, nil
}

func (u *referenceUsecase) ListDrugs(ctx context.Context, session entity.Session) (*dto.DrugListResponse, error) {
	drugs, err := u.referenceSync.Drugs(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list drugs: %+v", err)
		return nil, err
	}
	responses := converter.DrugsToResponses(drugs)
	return &dto.DrugListResponse{Drugs: responses, Total: len(responses)}, nil
}

func (u *referenceUsecase) CreateDrug(ctx context.Context, session entity.Session, req *dto.CreateDrugRequest) (*dto.DrugResponse, error) {
	drug, err := u.gateway.CreateDrug(ctx, session, converter.DrugRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create drug: %+v", err)
		return nil, err
	}

	u.invalidate(ctx, session, repository.ReferenceDrugs)
	resp := converter.DrugToResponse(drug)
	_ = u.auditService.LogCreate(ctx, session, entity.AuditActionDrugCreate, "drug", drug.ID, resp)
	return resp, nil
}

// A stale list only costs a refetch after the TTL, so invalidation errors are logged.
func (u *referenceUsecase) invalidate(ctx context.Context, session entity.Session, kind string) {
	if err := u.referenceSync.Invalidate(ctx, session.OrganizationID, kind); err != nil {
		u.log.Warnf("Failed to invalidate %s cache: %+v", kind, err)
	}
}
