package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
)

// generateSlotsHandler expands a schedule pattern and merges the result
// into the doctor's collection in one request.
func generateSlotsHandler(svc *clinic.Service, gen *schedule.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := chi.URLParam(r, "id")

		var req ScheduleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		res, err := gen.Generate(doctorID, req)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		merge, err := svc.MergeSlots(r.Context(), doctorID, res.Slots)
		if err != nil {
			handleServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ScheduleResponse{
			Generated: len(res.Slots),
			Dates:     res.Dates,
			Merge:     merge,
		})
	}
}

func listSlotsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.ListSlots(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponses(slots, time.Now()))
	}
}

func slotSummaryHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.SlotSummary(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func bookSlotHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.PatientID == "" {
			writeError(w, http.StatusBadRequest, "validation_failed", "patientId is required")
			return
		}

		slot, err := svc.Book(r.Context(), chi.URLParam(r, "id"), clinic.BookingInput{
			PatientID: req.PatientID,
		})
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SlotResponse{Slot: *slot, Category: slot.Category(time.Now())})
	}
}

func completeSlotHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := svc.MarkCompleted(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SlotResponse{Slot: *slot, Category: slot.Category(time.Now())})
	}
}

func acknowledgeSlotHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visit, err := svc.AcknowledgeSlot(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, visit)
	}
}
