package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

func createVisitHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateVisitRequest
		if !decodeBody(w, r, &req) {
			return
		}

		visit, err := svc.CreateVisit(r.Context(), clinic.CreateVisitInput{
			PatientID:  req.PatientID,
			DoctorID:   req.DoctorID,
			SlotID:     req.SlotID,
			Token:      req.Token,
			Complaints: req.Complaints,
			Status:     clinic.VisitStatus(req.Status),
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, visit)
	}
}

func getVisitHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visit, err := svc.GetVisit(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visit)
	}
}

func patchVisitHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VisitPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}

		visit, err := svc.UpdateVisit(r.Context(), chi.URLParam(r, "id"), req.toPatch())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visit)
	}
}

// completeVisitHandler closes the encounter and pushes the completion
// through the linked slot and patient record.
func completeVisitHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VisitPatchRequest
		if r.ContentLength > 0 {
			if !decodeBody(w, r, &req) {
				return
			}
		}

		visit, err := svc.CompleteVisit(r.Context(), chi.URLParam(r, "id"), req.toPatch())
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visit)
	}
}

func listPatientVisitsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visits, err := svc.ListVisitsForPatient(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visits)
	}
}
