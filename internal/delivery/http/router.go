package http

import (
	"net/http"

	"hospital-admin/internal/delivery/http/handler"
	"hospital-admin/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router            *mux.Router
	log               *logrus.Logger
	doctorFormHandler *handler.DoctorFormHandler
	doctorPageHandler *handler.DoctorPageHandler
	auditLogHandler   *handler.AuditLogHandler
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	doctorFormHandler *handler.DoctorFormHandler,
	doctorPageHandler *handler.DoctorPageHandler,
	auditLogHandler *handler.AuditLogHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		log:               log,
		doctorFormHandler: doctorFormHandler,
		doctorPageHandler: doctorPageHandler,
		auditLogHandler:   auditLogHandler,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/api/v1/health", r.healthCheck).Methods(http.MethodGet)

	// Session-scoped routes
	app := r.router.NewRoute().Subrouter()
	app.Use(r.sessionMiddleware.Handle)

	// Pages
	app.HandleFunc("/", r.doctorPageHandler.RedirectHome).Methods(http.MethodGet)
	app.HandleFunc("/doctors/doc-add", r.doctorPageHandler.Show).Methods(http.MethodGet)
	app.HandleFunc("/doctors/doc-add", r.doctorPageHandler.Submit).Methods(http.MethodPost)
	app.HandleFunc("/doctors/doc-add/photo", r.doctorPageHandler.StagePhoto).Methods(http.MethodPost)
	app.HandleFunc("/doctors/doc-add/photo/upload", r.doctorPageHandler.UploadPhoto).Methods(http.MethodPost)

	// Local photo previews
	app.HandleFunc("/admin/previews/{id}", r.doctorFormHandler.GetPreview).Methods(http.MethodGet)

	// Form API
	api := app.PathPrefix("/admin/api").Subrouter()
	api.HandleFunc("/doctor-form", r.doctorFormHandler.GetForm).Methods(http.MethodGet)
	api.HandleFunc("/doctor-form", r.doctorFormHandler.Reset).Methods(http.MethodDelete)
	api.HandleFunc("/doctor-form/fields", r.doctorFormHandler.SetField).Methods(http.MethodPatch)
	api.HandleFunc("/doctor-form/photo", r.doctorFormHandler.StagePhoto).Methods(http.MethodPost)
	api.HandleFunc("/doctor-form/photo/upload", r.doctorFormHandler.UploadPhoto).Methods(http.MethodPost)
	api.HandleFunc("/doctor-form/validate", r.doctorFormHandler.Validate).Methods(http.MethodPost)
	api.HandleFunc("/doctor-form/payload", r.doctorFormHandler.GetPayload).Methods(http.MethodGet)
	api.HandleFunc("/doctor-form/save", r.doctorFormHandler.Save).Methods(http.MethodPost)
	api.HandleFunc("/navigation", r.doctorFormHandler.GetNavigation).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
