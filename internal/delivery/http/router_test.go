package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/delivery/http/handler"
	"forpharma-console/internal/delivery/http/middleware"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway/gatewaytest"
	"forpharma-console/internal/repository"
	"forpharma-console/internal/service"
	"forpharma-console/internal/usecase"
	"forpharma-console/pkg/jwt"
	"forpharma-console/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAuditService struct{}

func (nopAuditService) LogAction(context.Context, entity.Session, string, entity.JSON) error {
	return nil
}

func (nopAuditService) LogCreate(context.Context, entity.Session, string, string, string, interface{}) error {
	return nil
}

func (nopAuditService) LogUpdate(context.Context, entity.Session, string, string, string, interface{}, interface{}) error {
	return nil
}

func (nopAuditService) LogDelete(context.Context, entity.Session, string, string, string, interface{}) error {
	return nil
}

type memoryReports struct {
	mu      sync.Mutex
	reports []entity.SubmissionReport
}

func (m *memoryReports) Create(ctx context.Context, report *entity.SubmissionReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryReports) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubmissionReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ID == id {
			r := m.reports[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryReports) FindByWizardID(ctx context.Context, id uuid.UUID) (*entity.SubmissionReport, error) {
	return nil, nil
}

func (m *memoryReports) FindAll(ctx context.Context, filter *entity.SubmissionReportFilter, limit, offset int) ([]entity.SubmissionReport, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports, int64(len(m.reports)), nil
}

func (m *memoryReports) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	router  *mux.Router
	gateway *gatewaytest.Fake
	token   string
}

func newTestServer(t *testing.T, role string) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	gw := gatewaytest.NewFake()
	gw.LoginResult = &entity.LoginResult{
		Token: "upstream",
		User: entity.LoginUser{
			ID:           "u-1",
			Email:        "staff@acme.com",
			Role:         role,
			Organization: entity.LoginOrganization{ID: "org-1", Name: "Acme Pharma"},
		},
	}

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	sessionRepo := repository.NewSessionRepository(client)
	referenceSync := service.NewReferenceSyncService(gw, repository.NewReferenceCache(client), log, time.Minute)
	t.Cleanup(referenceSync.Stop)
	audit := nopAuditService{}
	v := validator.NewValidator()

	authUsecase := usecase.NewAuthUsecase(log, gw, sessionRepo, jwtService, audit)
	onboardingUsecase := usecase.NewOnboardingUsecase(log, repository.NewWizardRepository(client), &memoryReports{}, gw, referenceSync, audit, config.WizardConfig{TTL: time.Hour})

	router := NewRouter(
		handler.NewAuthHandler(authUsecase, v),
		handler.NewWizardHandler(onboardingUsecase, v),
		handler.NewReferenceHandler(usecase.NewReferenceUsecase(log, gw, referenceSync, audit), v),
		handler.NewSubmissionReportHandler(usecase.NewSubmissionReportUsecase(log, &memoryReports{}), v),
		handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(nil, log, nil)),
		handler.NewUserHandler(usecase.NewUserUsecase(log, gw, audit), v),
		middleware.NewAuthMiddleware(jwtService, sessionRepo, log),
		middleware.NewCORSMiddleware(),
	).Setup()

	s := &testServer{t: t, router: router, gateway: gw}

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "staff@acme.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	s.token = tokens.AccessToken
	return s
}

func (s *testServer) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

type wizardView struct {
	ID          uuid.UUID `json:"id"`
	CurrentStep int       `json:"current_step"`
	CanAdvance  bool      `json:"can_advance"`
}

func (s *testServer) openWizard() wizardView {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/wizards", nil)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var view wizardView
	require.NoError(s.t, json.Unmarshal(env.Data, &view))
	return view
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, "manager")
	s.token = ""
	rec, _ := s.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t, "manager")
	s.token = ""

	rec, _ := s.do(http.MethodPost, "/api/v1/wizards", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.token = "not-a-jwt"
	rec, _ = s.do(http.MethodGet, "/api/v1/doctors", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	s := newTestServer(t, "manager")

	rec, _ := s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", env.Message)
}

func TestAuditLogsAreAdminOnly(t *testing.T) {
	s := newTestServer(t, "manager")
	rec, _ := s.do(http.MethodGet, "/api/v1/audit-logs", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWizardOverHTTP(t *testing.T) {
	s := newTestServer(t, "admin")
	view := s.openWizard()
	base := "/api/v1/wizards/" + view.ID.String()

	rec, _ := s.do(http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env := s.do(http.MethodPatch, base+"/doctor", map[string]string{
		"name": "Dr. A", "email": "a@b.com", "phone": "1", "specialization": "Cardio",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.CanAdvance)

	rec, _ = s.do(http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPut, base+"/association-draft", map[string]string{"hospital_id": "H1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(http.MethodPost, base+"/association-draft/schedule/monday/slots", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = s.do(http.MethodPatch, base+"/association-draft/schedule/monday/slots/0", map[string]string{
		"consultation_type": "OPD", "from": "09:00", "to": "11:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(http.MethodPatch, base+"/association-draft/schedule/monday/slots/0", map[string]string{"from": "9am"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, base+"/associations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodDelete, base+"/associations/5", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, base+"/chemists/C1/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		Status   string `json:"status"`
		DoctorID string `json:"doctor_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "completed", report.Status)
	assert.Equal(t, "doc-1", report.DoctorID)

	rec, _ = s.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardBackOnFirstStepExits(t *testing.T) {
	s := newTestServer(t, "manager")
	view := s.openWizard()

	rec, env := s.do(http.MethodPost, "/api/v1/wizards/"+view.ID.String()+"/back", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var nav struct {
		Exited bool `json:"exited"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &nav))
	assert.True(t, nav.Exited)

	rec, _ = s.do(http.MethodGet, "/api/v1/wizards/"+view.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardBadID(t *testing.T) {
	s := newTestServer(t, "manager")
	rec, _ := s.do(http.MethodGet, "/api/v1/wizards/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateChemistValidation(t *testing.T) {
	s := newTestServer(t, "manager")
	rec, _ := s.do(http.MethodPost, "/api/v1/chemists", map[string]string{"name": "Apotek", "type": "PHARMACY"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.gateway.CallsTo("CreateChemist"))
}

func TestUsersAreAdminOnly(t *testing.T) {
	s := newTestServer(t, "manager")
	rec, _ := s.do(http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.gateway.CallsTo("ListUsers"))
}

func TestAdminManagesUsers(t *testing.T) {
	s := newTestServer(t, "admin")
	s.gateway.Users = []entity.User{
		{ID: "u-2", Email: "rep@acme.com", FirstName: "Rina", Role: entity.StaffRoleMedicalRepresentative, IsActive: true},
		{ID: "u-3", Email: "boss@acme.com", FirstName: "Budi", Role: entity.StaffRoleSalesManager},
	}

	rec, env := s.do(http.MethodGet, "/api/v1/users?search=rina", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "u-2", list.Users[0].ID)

	rec, _ = s.do(http.MethodPost, "/api/v1/users", map[string]string{
		"first_name": "Sari", "email": "sari@acme.com", "role": "JANITOR",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.gateway.CallsTo("CreateUser"))

	rec, _ = s.do(http.MethodPost, "/api/v1/users", map[string]string{
		"first_name": "Sari", "email": "sari@acme.com", "role": entity.StaffRoleMedicalRepresentative,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	calls := s.gateway.CallsTo("CreateUser")
	require.Len(t, calls, 1)
	created := calls[0].Payload.(entity.NewUser)
	assert.Equal(t, "Acme Pharma", created.OrganizationName)
	assert.NotEmpty(t, created.Password)
}

func TestSignupAndActivationArePublic(t *testing.T) {
	s := newTestServer(t, "manager")
	s.token = ""

	rec, env := s.do(http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"organization_name":  "Nusantara Pharma",
		"organization_email": "hello@nusantara.com",
		"admin_first_name":   "Dewi",
		"admin_email":        "dewi@nusantara.com",
		"admin_password":     "Str0ngPass!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var signup struct {
		OrganizationID string `json:"organization_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signup))
	assert.Equal(t, "org-new", signup.OrganizationID)

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/activate", map[string]string{
		"email": "rep@acme.com", "password": "password", "confirm_password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/activate", map[string]string{
		"email": "rep@acme.com", "password": "Secret123", "confirm_password": "Secret124",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.gateway.CallsTo("ActivateAccount"))

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/activate", map[string]string{
		"email": "rep@acme.com", "password": "Secret123", "confirm_password": "Secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, s.gateway.CallsTo("ActivateAccount"), 1)
}
