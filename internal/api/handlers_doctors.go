package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

func registerDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DoctorRequest
		if !decodeBody(w, r, &req) {
			return
		}

		doc, err := svc.RegisterDoctor(r.Context(), clinic.RegisterDoctorInput{
			Name:     req.Name,
			Type:     req.Type,
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDoctorResponse(*doc))
	}
}

func listDoctorsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}

		out := make([]DoctorResponse, len(doctors))
		for i, d := range doctors {
			out[i] = toDoctorResponse(d)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := svc.GetDoctor(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(*doc))
	}
}

func updateDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DoctorRequest
		if !decodeBody(w, r, &req) {
			return
		}

		doc, err := svc.UpdateDoctor(r.Context(), chi.URLParam(r, "id"), req.Name, req.Type)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoctorResponse(*doc))
	}
}

func listDoctorTypesHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.DoctorTypes(r.Context())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types)
	}
}

func addDoctorTypeHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DoctorTypeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		types, err := svc.AddDoctorType(r.Context(), req.Label)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, types)
	}
}
