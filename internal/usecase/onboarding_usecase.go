package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/converter"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/domain/repository"
	"forpharma-console/internal/service"
	"forpharma-console/internal/wizard"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrWizardNotFound       = errors.New("wizard not found")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDuplicateSubmission  = errors.New("wizard was already submitted")
)

// submitLockTTL bounds how long a crashed submission can block its wizard.
const submitLockTTL = 2 * time.Minute

type OnboardingUsecase interface {
	Open(ctx context.Context, session entity.Session, req *dto.OpenWizardRequest) (*dto.WizardResponse, error)
	Get(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error)
	Close(ctx context.Context, session entity.Session, id uuid.UUID) error

	UpdateDoctor(ctx context.Context, session entity.Session, id uuid.UUID, req *dto.UpdateDoctorDraftRequest) (*dto.WizardResponse, error)
	SetAssociationDraft(ctx context.Context, session entity.Session, id uuid.UUID, req *dto.AssociationDraftRequest) (*dto.WizardResponse, error)
	CommitAssociation(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error)
	RemoveAssociation(ctx context.Context, session entity.Session, id uuid.UUID, index int) (*dto.WizardResponse, error)
	EditAssociation(ctx context.Context, session entity.Session, id uuid.UUID, index int) (*dto.WizardResponse, error)
	AddSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string) (*dto.SlotResponse, error)
	UpdateSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string, slot int, req *dto.UpdateSlotRequest) (*dto.WizardResponse, error)
	RemoveSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string, slot int) (*dto.WizardResponse, error)
	ToggleChemist(ctx context.Context, session entity.Session, id uuid.UUID, chemistID string) (*dto.ChemistToggleResponse, error)

	Next(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error)
	Back(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.NavigationResponse, error)
	GoToStep(ctx context.Context, session entity.Session, id uuid.UUID, step int) (*dto.WizardResponse, error)

	Submit(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.SubmissionReportResponse, error)
}

type onboardingUsecase struct {
	log           *logrus.Logger
	wizardRepo    repository.WizardRepository
	reportRepo    repository.SubmissionReportRepository
	gateway       gateway.ForPharmaGateway
	referenceSync *service.ReferenceSyncService
	auditService  service.AuditService
	submitter     *wizard.Submitter
	ttl           time.Duration
	mode          entity.ConsultationMode
}

func NewOnboardingUsecase(
	log *logrus.Logger,
	wizardRepo repository.WizardRepository,
	reportRepo repository.SubmissionReportRepository,
	gw gateway.ForPharmaGateway,
	referenceSync *service.ReferenceSyncService,
	auditService service.AuditService,
	cfg config.WizardConfig,
) OnboardingUsecase {
	mode := entity.ParseConsultationMode(cfg.ConsultationMode)
	return &onboardingUsecase{
		log:           log,
		wizardRepo:    wizardRepo,
		reportRepo:    reportRepo,
		gateway:       gw,
		referenceSync: referenceSync,
		auditService:  auditService,
		submitter:     wizard.NewSubmitter(gw, log, mode),
		ttl:           cfg.TTL,
		mode:          mode,
	}
}

func (u *onboardingUsecase) Open(ctx context.Context, session entity.Session, req *dto.OpenWizardRequest) (*dto.WizardResponse, error) {
	state := wizard.NewState(uuid.New(), session, time.Now())
	w := wizard.New(state, u.mode)

	if req != nil && req.DoctorID != "" {
		doctor, err := u.findDoctor(ctx, session, req.DoctorID)
		if err != nil {
			return nil, err
		}
		records, err := u.gateway.ListDoctorHospitalAssociations(ctx, session, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to load hospital associations of doctor %s: %+v", doctor.ID, err)
			return nil, err
		}
		w.LoadDoctor(*doctor, converter.AssociationRecordsToDrafts(records))
	}

	if err := u.wizardRepo.Save(ctx, state, u.ttl); err != nil {
		u.log.Warnf("Failed to save wizard: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogAction(ctx, session, entity.AuditActionWizardOpen, entity.JSON{
		"wizard_id": state.ID.String(),
		"doctor_id": state.DoctorID,
	})

	return converter.WizardToResponse(w), nil
}

func (u *onboardingUsecase) Get(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error) {
	w, err := u.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return converter.WizardToResponse(w), nil
}

// Close discards the wizard. Nothing already submitted is undone.
func (u *onboardingUsecase) Close(ctx context.Context, session entity.Session, id uuid.UUID) error {
	w, err := u.load(ctx, session, id)
	if err != nil {
		return err
	}
	return u.discard(ctx, session, w)
}

func (u *onboardingUsecase) UpdateDoctor(ctx context.Context, session entity.Session, id uuid.UUID, req *dto.UpdateDoctorDraftRequest) (*dto.WizardResponse, error) {
	fields := converter.DoctorDraftUpdateToFields(req)
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.SetDoctorFields(fields)
	})
}

func (u *onboardingUsecase) SetAssociationDraft(ctx context.Context, session entity.Session, id uuid.UUID, req *dto.AssociationDraftRequest) (*dto.WizardResponse, error) {
	details := converter.AssociationRequestToDetails(req)
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.SetAssociationDetails(details)
	})
}

// CommitAssociation without a hospital is ignored: the unchanged wizard comes back.
func (u *onboardingUsecase) CommitAssociation(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error) {
	resp, err := u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.AddOrUpdateAssociation()
	})
	if errors.Is(err, wizard.ErrHospitalRequired) {
		return u.Get(ctx, session, id)
	}
	return resp, err
}

func (u *onboardingUsecase) RemoveAssociation(ctx context.Context, session entity.Session, id uuid.UUID, index int) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.RemoveAssociation(index)
	})
}

func (u *onboardingUsecase) EditAssociation(ctx context.Context, session entity.Session, id uuid.UUID, index int) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.BeginEdit(index)
	})
}

func (u *onboardingUsecase) AddSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string) (*dto.SlotResponse, error) {
	var index int
	resp, err := u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		var err error
		index, err = w.AddConsultationSlot(day)
		return err
	})
	if err != nil {
		return nil, err
	}

	weekday, _ := entity.ParseWeekday(day)
	return &dto.SlotResponse{Day: entity.WeekdayName(weekday), Index: index, Wizard: resp}, nil
}

func (u *onboardingUsecase) UpdateSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string, slot int, req *dto.UpdateSlotRequest) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		updates := []struct {
			field string
			value *string
		}{
			{wizard.SlotFieldConsultationType, req.ConsultationType},
			{wizard.SlotFieldFrom, req.From},
			{wizard.SlotFieldTo, req.To},
		}
		for _, upd := range updates {
			if upd.value == nil {
				continue
			}
			if err := w.UpdateConsultationSlot(day, slot, upd.field, *upd.value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (u *onboardingUsecase) RemoveSlot(ctx context.Context, session entity.Session, id uuid.UUID, day string, slot int) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.RemoveConsultationSlot(day, slot)
	})
}

func (u *onboardingUsecase) ToggleChemist(ctx context.Context, session entity.Session, id uuid.UUID, chemistID string) (*dto.ChemistToggleResponse, error) {
	var selected bool
	resp, err := u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		var err error
		selected, err = w.ToggleChemist(chemistID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ChemistToggleResponse{ChemistID: chemistID, Selected: selected, Wizard: resp}, nil
}

func (u *onboardingUsecase) Next(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.GoNext()
	})
}

// Back on the first step leaves the wizard, which closes it.
func (u *onboardingUsecase) Back(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.NavigationResponse, error) {
	w, err := u.load(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if exit := w.GoBack(); exit {
		if err := u.discard(ctx, session, w); err != nil {
			return nil, err
		}
		return &dto.NavigationResponse{Exited: true}, nil
	}

	if err := u.save(ctx, w); err != nil {
		return nil, err
	}
	return &dto.NavigationResponse{Wizard: converter.WizardToResponse(w)}, nil
}

func (u *onboardingUsecase) GoToStep(ctx context.Context, session entity.Session, id uuid.UUID, step int) (*dto.WizardResponse, error) {
	return u.mutate(ctx, session, id, func(w *wizard.Wizard) error {
		return w.GoToStep(entity.WizardStep(step))
	})
}

// Submit runs the onboarding saga once per wizard. Success or failure, the wizard is
// closed afterwards, the doctor list refreshed and the report stored.
func (u *onboardingUsecase) Submit(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.SubmissionReportResponse, error) {
	w, err := u.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	state := w.State()
	if err := wizard.ReadyToSubmit(state); err != nil {
		return nil, err
	}

	owner := uuid.NewString()
	acquired, err := u.wizardRepo.AcquireSubmitLock(ctx, id, owner, submitLockTTL)
	if err != nil {
		u.log.Warnf("Failed to acquire submit lock: %+v", err)
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInProgress
	}

	// Cleanup must run even when the caller went away mid-saga.
	cleanupCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := u.wizardRepo.ReleaseSubmitLock(cleanupCtx, id, owner); err != nil {
			u.log.Warnf("Failed to release submit lock: %+v", err)
		}
	}()

	// A submit that finished while we waited for the lock has closed the wizard.
	w, err = u.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	state = w.State()
	if err := wizard.ReadyToSubmit(state); err != nil {
		return nil, err
	}

	report, err := u.submitter.Submit(ctx, session, state)
	if err != nil {
		return nil, err
	}

	if err := u.wizardRepo.Delete(cleanupCtx, id); err != nil {
		u.log.Warnf("Failed to close submitted wizard: %+v", err)
	}
	if _, err := u.referenceSync.RefreshDoctors(cleanupCtx, session); err != nil {
		u.log.Warnf("Failed to refresh doctors after submission: %+v", err)
	}

	if err := u.reportRepo.Create(cleanupCtx, report); err != nil {
		if isDuplicateKeyError(err, "wizard_id") {
			return nil, ErrDuplicateSubmission
		}
		u.log.Warnf("Failed to save submission report: %+v", err)
		return nil, err
	}

	summary := converter.SubmissionReportToResponse(report)
	if report.EditMode {
		_ = u.auditService.LogUpdate(cleanupCtx, session, entity.AuditActionWizardSubmit, "doctor", report.DoctorID, nil, summary)
	} else {
		_ = u.auditService.LogCreate(cleanupCtx, session, entity.AuditActionWizardSubmit, "doctor", report.DoctorID, summary)
	}

	return summary, nil
}

// load returns the caller's wizard. Another user's wizard is reported as not found.
func (u *onboardingUsecase) load(ctx context.Context, session entity.Session, id uuid.UUID) (*wizard.Wizard, error) {
	state, err := u.wizardRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to load wizard: %+v", err)
		return nil, err
	}
	if state == nil || state.UserID != session.UserID {
		return nil, ErrWizardNotFound
	}
	return wizard.New(state, u.mode), nil
}

func (u *onboardingUsecase) save(ctx context.Context, w *wizard.Wizard) error {
	w.State().UpdatedAt = time.Now()
	if err := u.wizardRepo.Save(ctx, w.State(), u.ttl); err != nil {
		u.log.Warnf("Failed to save wizard: %+v", err)
		return err
	}
	return nil
}

// mutate applies op and stores the result. A failed op leaves the stored wizard untouched.
func (u *onboardingUsecase) mutate(ctx context.Context, session entity.Session, id uuid.UUID, op func(w *wizard.Wizard) error) (*dto.WizardResponse, error) {
	w, err := u.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := op(w); err != nil {
		return nil, err
	}
	if err := u.save(ctx, w); err != nil {
		return nil, err
	}
	return converter.WizardToResponse(w), nil
}

func (u *onboardingUsecase) discard(ctx context.Context, session entity.Session, w *wizard.Wizard) error {
	state := w.State()
	dirty := w.IsDirty()
	if err := u.wizardRepo.Delete(ctx, state.ID); err != nil {
		u.log.Warnf("Failed to delete wizard: %+v", err)
		return err
	}

	_ = u.auditService.LogDelete(ctx, session, entity.AuditActionWizardCancel, "wizard", state.ID.String(), entity.JSON{
		"doctor_name":  state.Doctor.Name,
		"associations": strconv.Itoa(len(state.Associations)),
		"dirty":        dirty,
	})
	return nil
}

func (u *onboardingUsecase) findDoctor(ctx context.Context, session entity.Session, doctorID string) (*entity.Doctor, error) {
	doctors, err := u.referenceSync.Doctors(ctx, session)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == doctorID {
			return &doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}
