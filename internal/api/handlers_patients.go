package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

func registerPatientHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if !decodeBody(w, r, &req) {
			return
		}

		pat, err := svc.RegisterPatient(r.Context(), clinic.PatientInput{
			Name:     req.Name,
			Age:      req.Age,
			DoctorID: req.DoctorID,
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pat)
	}
}

func listPatientsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, patients)
	}
}

func getPatientHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pat, err := svc.GetPatient(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pat)
	}
}

func updatePatientHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if !decodeBody(w, r, &req) {
			return
		}

		pat, err := svc.UpdatePatient(r.Context(), chi.URLParam(r, "id"), clinic.PatientInput{
			Name:     req.Name,
			Age:      req.Age,
			DoctorID: req.DoctorID,
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pat)
	}
}
