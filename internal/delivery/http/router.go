package http

import (
	"net/http"

	"forpharma-console/internal/delivery/http/handler"
	"forpharma-console/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	authHandler             *handler.AuthHandler
	wizardHandler           *handler.WizardHandler
	referenceHandler        *handler.ReferenceHandler
	submissionReportHandler *handler.SubmissionReportHandler
	auditLogHandler         *handler.AuditLogHandler
	userHandler             *handler.UserHandler
	authMiddleware          *middleware.AuthMiddleware
	corsMiddleware          *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	wizardHandler *handler.WizardHandler,
	referenceHandler *handler.ReferenceHandler,
	submissionReportHandler *handler.SubmissionReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		authHandler:             authHandler,
		wizardHandler:           wizardHandler,
		referenceHandler:        referenceHandler,
		submissionReportHandler: submissionReportHandler,
		auditLogHandler:         auditLogHandler,
		userHandler:             userHandler,
		authMiddleware:          authMiddleware,
		corsMiddleware:          corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/signup", r.userHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/activate", r.userHandler.ActivateAccount).Methods(http.MethodPost)

	// Everything below needs a console session
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Reference data
	protected.HandleFunc("/doctors", r.referenceHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals", r.referenceHandler.GetAllHospitals).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals", r.referenceHandler.CreateHospital).Methods(http.MethodPost)
	protected.HandleFunc("/chemists", r.referenceHandler.GetAllChemists).Methods(http.MethodGet)
	protected.HandleFunc("/chemists", r.referenceHandler.CreateChemist).Methods(http.MethodPost)
	protected.HandleFunc("/drugs", r.referenceHandler.GetAllDrugs).Methods(http.MethodGet)
	protected.HandleFunc("/drugs", r.referenceHandler.CreateDrug).Methods(http.MethodPost)

	// Onboarding wizard
	protected.HandleFunc("/wizards", r.wizardHandler.OpenWizard).Methods(http.MethodPost)
	wizards := protected.PathPrefix("/wizards/{id}").Subrouter()
	wizards.HandleFunc("", r.wizardHandler.GetWizard).Methods(http.MethodGet)
	wizards.HandleFunc("", r.wizardHandler.CloseWizard).Methods(http.MethodDelete)
	wizards.HandleFunc("/doctor", r.wizardHandler.UpdateDoctor).Methods(http.MethodPatch)
	wizards.HandleFunc("/association-draft", r.wizardHandler.SetAssociationDraft).Methods(http.MethodPut)
	wizards.HandleFunc("/association-draft/schedule/{day}/slots", r.wizardHandler.AddSlot).Methods(http.MethodPost)
	wizards.HandleFunc("/association-draft/schedule/{day}/slots/{slot}", r.wizardHandler.UpdateSlot).Methods(http.MethodPatch)
	wizards.HandleFunc("/association-draft/schedule/{day}/slots/{slot}", r.wizardHandler.RemoveSlot).Methods(http.MethodDelete)
	wizards.HandleFunc("/associations", r.wizardHandler.CommitAssociation).Methods(http.MethodPost)
	wizards.HandleFunc("/associations/{index}", r.wizardHandler.RemoveAssociation).Methods(http.MethodDelete)
	wizards.HandleFunc("/associations/{index}/edit", r.wizardHandler.EditAssociation).Methods(http.MethodPost)
	wizards.HandleFunc("/chemists/{chemistId}/toggle", r.wizardHandler.ToggleChemist).Methods(http.MethodPost)
	wizards.HandleFunc("/next", r.wizardHandler.Next).Methods(http.MethodPost)
	wizards.HandleFunc("/back", r.wizardHandler.Back).Methods(http.MethodPost)
	wizards.HandleFunc("/steps/{step}", r.wizardHandler.GoToStep).Methods(http.MethodPost)
	wizards.HandleFunc("/submit", r.wizardHandler.Submit).Methods(http.MethodPost)

	// Submission reports
	protected.HandleFunc("/submissions", r.submissionReportHandler.GetAllSubmissions).Methods(http.MethodGet)
	protected.HandleFunc("/submissions/{id}", r.submissionReportHandler.GetSubmission).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/audit-logs").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	users := protected.PathPrefix("/users").Subrouter()
	users.Use(middleware.RequireAdmin)
	users.HandleFunc("", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	users.HandleFunc("", r.userHandler.CreateUser).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
