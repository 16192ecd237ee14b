package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/bus"
	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewMemoryStore()
	b := bus.New()
	log := zerolog.Nop()

	svc := clinic.NewService(store, b, log)
	gen := schedule.NewGenerator()

	return NewRouter(RouterConfig{
		Service:   svc,
		Generator: gen,
		Store:     store,
		Log:       log,
		Backend:   "memory",
		Env:       "test",
		Version:   "test",
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthLive(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterDoctorEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/doctors", DoctorRequest{
		Name: "Asha Rao", Type: "General", Username: "asha", Password: "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	doc := decode[DoctorResponse](t, rec)
	if doc.ID == "" || doc.Name != "Asha Rao" {
		t.Fatalf("unexpected response: %+v", doc)
	}

	// The stored password never leaves the API.
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if _, leaked := raw["password"]; leaked {
		t.Fatal("password must not appear in API output")
	}

	// Duplicate username conflicts.
	rec = doJSON(t, h, http.MethodPost, "/doctors", DoctorRequest{
		Name: "Other", Type: "General", Username: "asha", Password: "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetDoctorNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/doctors/doc_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errResp := decode[ErrorResponse](t, rec)
	if errResp.Error != "doctor_not_found" {
		t.Fatalf("expected doctor_not_found, got %q", errResp.Error)
	}
}

func TestGenerateSlotsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/doctors", DoctorRequest{
		Name: "Asha Rao", Type: "General", Username: "asha", Password: "pw",
	})
	doc := decode[DoctorResponse](t, rec)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	rec = doJSON(t, h, http.MethodPost, "/doctors/"+doc.ID+"/slots", ScheduleRequest{
		Mode: schedule.ModeDaily, From: "09:00", To: "10:00", Increment: 30, Date: tomorrow,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	res := decode[ScheduleResponse](t, rec)
	if res.Generated != 2 || res.Merge == nil || res.Merge.Added != 2 {
		t.Fatalf("unexpected schedule response: %+v", res)
	}
	if len(res.Dates) != 1 || res.Dates[0] != tomorrow {
		t.Fatalf("expected dates [%s], got %v", tomorrow, res.Dates)
	}

	// Validation failures surface as 400.
	rec = doJSON(t, h, http.MethodPost, "/doctors/"+doc.ID+"/slots", ScheduleRequest{
		Mode: schedule.ModeDaily, From: "09:00", To: "10:00", Increment: 2, Date: tomorrow,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad increment, got %d", rec.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/doctors", DoctorRequest{
		Name: "Asha Rao", Type: "General", Username: "asha", Password: "pw",
	})
	doc := decode[DoctorResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/patients", PatientRequest{Name: "Ravi", Age: 42})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	pat := decode[clinic.Patient](t, rec)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	rec = doJSON(t, h, http.MethodPost, "/doctors/"+doc.ID+"/slots", ScheduleRequest{
		Mode: schedule.ModeDaily, From: "09:00", To: "09:30", Increment: 30, Date: tomorrow,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate slots: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/doctors/"+doc.ID+"/slots", nil)
	slots := decode[[]SlotResponse](t, rec)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Category != clinic.CategoryAvailable {
		t.Fatalf("expected available category, got %s", slots[0].Category)
	}
	slotID := slots[0].ID

	// Missing patientId is a 400 before the core is reached.
	rec = doJSON(t, h, http.MethodPost, "/slots/"+slotID+"/book", BookRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/slots/"+slotID+"/book", BookRequest{PatientID: pat.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	booked := decode[SlotResponse](t, rec)
	if booked.Token != "TK001" || booked.Category != clinic.CategoryBooked {
		t.Fatalf("unexpected booked slot: %+v", booked)
	}

	// A second booking attempt conflicts.
	rec = doJSON(t, h, http.MethodPost, "/slots/"+slotID+"/book", BookRequest{PatientID: pat.ID})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	errResp := decode[ErrorResponse](t, rec)
	if errResp.Error != "slot_not_available" {
		t.Fatalf("expected slot_not_available, got %q", errResp.Error)
	}

	// The booking shows up in the patient's appointment history.
	rec = doJSON(t, h, http.MethodGet, "/patients/"+pat.ID, nil)
	got := decode[clinic.Patient](t, rec)
	if len(got.Appointments) != 1 || got.Appointments[0].SlotID != slotID {
		t.Fatalf("expected mirrored appointment, got %+v", got.Appointments)
	}

	// Complete the slot and confirm the category follows.
	rec = doJSON(t, h, http.MethodPost, "/slots/"+slotID+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	completed := decode[SlotResponse](t, rec)
	if completed.Category != clinic.CategoryCompleted {
		t.Fatalf("expected completed category, got %s", completed.Category)
	}
}

func TestVisitEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/patients", PatientRequest{Name: "Ravi", Age: 42})
	pat := decode[clinic.Patient](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/visits", CreateVisitRequest{
		PatientID: pat.ID, Complaints: "fever",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	visit := decode[clinic.Visit](t, rec)
	if visit.Status != clinic.VisitDraft {
		t.Fatalf("expected draft visit, got %s", visit.Status)
	}

	diagnosis := "viral infection"
	rec = doJSON(t, h, http.MethodPatch, "/visits/"+visit.ID, VisitPatchRequest{Diagnosis: &diagnosis})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	patched := decode[clinic.Visit](t, rec)
	if patched.Diagnosis != diagnosis || patched.Complaints != "fever" {
		t.Fatalf("patch mismatch: %+v", patched)
	}

	rec = doJSON(t, h, http.MethodPost, "/visits/"+visit.ID+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	done := decode[clinic.Visit](t, rec)
	if done.Status != clinic.VisitCompleted || done.CompletedAt == nil {
		t.Fatalf("expected completed visit, got %+v", done)
	}

	rec = doJSON(t, h, http.MethodGet, "/patients/"+pat.ID+"/visits", nil)
	visits := decode[[]clinic.Visit](t, rec)
	if len(visits) != 1 || visits[0].ID != visit.ID {
		t.Fatalf("expected 1 visit for patient, got %+v", visits)
	}

	rec = doJSON(t, h, http.MethodGet, "/visits/visit_missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSessionEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/doctors", DoctorRequest{
		Name: "Asha Rao", Type: "General", Username: "asha", Password: "pw",
	})
	doc := decode[DoctorResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/login", LoginRequest{Username: "asha", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/login", LoginRequest{Username: "asha", Password: "pw"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	current := decode[DoctorResponse](t, rec)
	if current.ID != doc.ID {
		t.Fatalf("expected session doctor %s, got %s", doc.ID, current.ID)
	}

	rec = doJSON(t, h, http.MethodPost, "/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
