package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

type RouterConfig struct {
	Service   *clinic.Service
	Generator *schedule.Generator
	Store     storage.Store
	Log       zerolog.Logger
	Backend   string
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	// Health endpoints
	health := NewHealthHandler(cfg.Store, cfg.Backend, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Doctor registry
	r.Post("/doctors", registerDoctorHandler(cfg.Service))
	r.Get("/doctors", listDoctorsHandler(cfg.Service))
	r.Get("/doctors/{id}", getDoctorHandler(cfg.Service))
	r.Put("/doctors/{id}", updateDoctorHandler(cfg.Service))
	r.Get("/doctor-types", listDoctorTypesHandler(cfg.Service))
	r.Post("/doctor-types", addDoctorTypeHandler(cfg.Service))

	// Slot schedule and lifecycle
	r.Post("/doctors/{id}/slots", generateSlotsHandler(cfg.Service, cfg.Generator))
	r.Get("/doctors/{id}/slots", listSlotsHandler(cfg.Service))
	r.Get("/doctors/{id}/slots/summary", slotSummaryHandler(cfg.Service))
	r.Post("/slots/{id}/book", bookSlotHandler(cfg.Service))
	r.Post("/slots/{id}/complete", completeSlotHandler(cfg.Service))
	r.Post("/slots/{id}/acknowledge", acknowledgeSlotHandler(cfg.Service))

	// Patient registry
	r.Post("/patients", registerPatientHandler(cfg.Service))
	r.Get("/patients", listPatientsHandler(cfg.Service))
	r.Get("/patients/{id}", getPatientHandler(cfg.Service))
	r.Put("/patients/{id}", updatePatientHandler(cfg.Service))
	r.Get("/patients/{id}/visits", listPatientVisitsHandler(cfg.Service))

	// Doctor session
	r.Post("/login", loginHandler(cfg.Service))
	r.Post("/logout", logoutHandler(cfg.Service))
	r.Get("/session", sessionHandler(cfg.Service))

	// Visit ledger
	r.Post("/visits", createVisitHandler(cfg.Service))
	r.Get("/visits/{id}", getVisitHandler(cfg.Service))
	r.Patch("/visits/{id}", patchVisitHandler(cfg.Service))
	r.Post("/visits/{id}/complete", completeVisitHandler(cfg.Service))

	return r
}
