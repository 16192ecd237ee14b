package api

import (
	"time"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
)

type DoctorRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// DoctorResponse leaves the stored password out of API output.
type DoctorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Username string `json:"username"`
}

func toDoctorResponse(d clinic.Doctor) DoctorResponse {
	return DoctorResponse{ID: d.ID, Name: d.Name, Type: d.Type, Username: d.Username}
}

type DoctorTypeRequest struct {
	Label string `json:"label"`
}

type PatientRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	DoctorID string `json:"doctorId,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BookRequest struct {
	PatientID string `json:"patientId"`
}

// ScheduleResponse echoes the resolved dates for audit alongside what the
// merge did with the generated slots.
type ScheduleResponse struct {
	Generated int                 `json:"generated"`
	Dates     []string            `json:"dates"`
	Merge     *clinic.MergeResult `json:"merge"`
}

// SlotResponse pairs the stored slot with its derived display category.
type SlotResponse struct {
	clinic.Slot
	Category clinic.DisplayCategory `json:"category"`
}

func toSlotResponses(slots []clinic.Slot, now time.Time) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, sl := range slots {
		out[i] = SlotResponse{Slot: sl, Category: sl.Category(now)}
	}
	return out
}

type CreateVisitRequest struct {
	PatientID  string `json:"patientId,omitempty"`
	DoctorID   string `json:"doctorId,omitempty"`
	SlotID     string `json:"slotId,omitempty"`
	Token      string `json:"token,omitempty"`
	Complaints string `json:"complaints,omitempty"`
	Status     string `json:"status,omitempty"`
}

type VisitPatchRequest struct {
	Complaints     *string                `json:"complaints,omitempty"`
	Vitals         map[string]string      `json:"vitals,omitempty"`
	Prescriptions  []clinic.Prescription  `json:"prescriptions,omitempty"`
	Investigations []clinic.Investigation `json:"investigations,omitempty"`
	Diagnosis      *string                `json:"diagnosis,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	Status         *string                `json:"status,omitempty"`
}

func (r VisitPatchRequest) toPatch() clinic.VisitPatch {
	patch := clinic.VisitPatch{
		Complaints:     r.Complaints,
		Vitals:         r.Vitals,
		Prescriptions:  r.Prescriptions,
		Investigations: r.Investigations,
		Diagnosis:      r.Diagnosis,
		Notes:          r.Notes,
	}
	if r.Status != nil {
		st := clinic.VisitStatus(*r.Status)
		patch.Status = &st
	}
	return patch
}

// ScheduleRequest is schedule.Request; aliased so handler imports read
// uniformly.
type ScheduleRequest = schedule.Request

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
