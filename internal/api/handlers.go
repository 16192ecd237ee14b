package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	return true
}

// handleServiceError maps the core's sentinel errors onto HTTP statuses:
// validation to 400, not-found to 404, stale-state conflicts to 409.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrInvalidArgument),
		errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, schedule.ErrIncrementTooSmall),
		errors.Is(err, schedule.ErrPastDate),
		errors.Is(err, schedule.ErrWeekOffset),
		errors.Is(err, schedule.ErrNoDates),
		errors.Is(err, schedule.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, clinic.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, clinic.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, clinic.ErrVisitNotFound):
		writeError(w, http.StatusNotFound, "visit_not_found", err.Error())
	case errors.Is(err, clinic.ErrSlotNotAvailable):
		writeError(w, http.StatusConflict, "slot_not_available", "slot no longer available, refresh and pick another")
	case errors.Is(err, clinic.ErrSlotNotBooked):
		writeError(w, http.StatusConflict, "slot_not_booked", err.Error())
	case errors.Is(err, clinic.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, clinic.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, clinic.ErrNoSession), errors.Is(err, clinic.ErrStaleSession):
		writeError(w, http.StatusUnauthorized, "no_session", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
