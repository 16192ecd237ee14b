package clinic

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotCompleted SlotStatus = "completed"
)

// DisplayCategory is the read-only classification shown to callers.
// "expired" is not a stored status: it is derived from an available slot
// whose end time has passed, so the stored state never needs a clock-driven
// rewrite.
type DisplayCategory string

const (
	CategoryAvailable DisplayCategory = "available"
	CategoryBooked    DisplayCategory = "booked"
	CategoryExpired   DisplayCategory = "expired"
	CategoryCompleted DisplayCategory = "completed"
)

// Slot is one bookable interval in a doctor's calendar. Slots are created in
// bulk by the schedule generator and only ever move available -> booked ->
// completed; they are never deleted.
type Slot struct {
	ID          string     `json:"id"`
	DoctorID    string     `json:"doctorId"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	Status      SlotStatus `json:"status"`
	PatientID   string     `json:"patientId,omitempty"`
	PatientName string     `json:"patientName,omitempty"`
	Token       string     `json:"token,omitempty"`
	// TokenDay is the YYYYMMDD day the token sequence belonged to. Tokens
	// repeat across days, so the day travels with the token wherever the
	// record must stay unambiguous.
	TokenDay string     `json:"tokenDay,omitempty"`
	BookedAt *time.Time `json:"bookedAt,omitempty"`
}

// Category classifies the slot for display at the given instant.
func (s Slot) Category(now time.Time) DisplayCategory {
	switch s.Status {
	case SlotCompleted:
		return CategoryCompleted
	case SlotBooked:
		return CategoryBooked
	}
	if !s.End.After(now) {
		return CategoryExpired
	}
	return CategoryAvailable
}

// Bookable reports whether a booking may still claim this slot: the stored
// status must be available and the end time strictly in the future.
func (s Slot) Bookable(now time.Time) bool {
	return s.Status == SlotAvailable && s.End.After(now)
}

// SlotSummary counts a doctor's slots per display category.
type SlotSummary struct {
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Expired   int `json:"expired"`
	Completed int `json:"completed"`
}

func (sum SlotSummary) Total() int {
	return sum.Available + sum.Booked + sum.Expired + sum.Completed
}

type Doctor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Username string `json:"username"`
	// Compared in plaintext at login; this is a demo credential, not auth.
	Password string `json:"password"`
}

// Appointment is the denormalized projection of a booked slot kept inside
// the owning patient record for read convenience. The slot stays the
// authoritative copy; the synchronizer keeps this one in step.
type Appointment struct {
	ID          string     `json:"id"`
	DoctorID    string     `json:"doctorId"`
	DoctorName  string     `json:"doctorName"`
	SlotID      string     `json:"slotId"`
	Token       string     `json:"token"`
	TokenDay    string     `json:"tokenDay,omitempty"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	BookedAt    time.Time  `json:"bookedAt"`
	Status      SlotStatus `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Patient struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Age          int           `json:"age"`
	DoctorID     string        `json:"doctorId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Appointments []Appointment `json:"appointments"`
}

type VisitStatus string

const (
	VisitDraft        VisitStatus = "draft"
	VisitAcknowledged VisitStatus = "acknowledged"
	VisitCompleted    VisitStatus = "completed"
	// VisitCancelled is carried for completeness; no flow sets it yet.
	VisitCancelled VisitStatus = "cancelled"
)

type Prescription struct {
	ID       string `json:"id"`
	Drug     string `json:"drug"`
	Dose     string `json:"dose"`
	Duration string `json:"duration"`
	Notes    string `json:"notes"`
}

type Investigation struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Result string `json:"result"`
	Notes  string `json:"notes"`
}

// Visit records one clinical encounter. It links to slot, patient and
// doctor by id but owns its own lifecycle; completing or deleting one side
// never deletes the other.
type Visit struct {
	ID             string            `json:"id"`
	PatientID      string            `json:"patientId,omitempty"`
	DoctorID       string            `json:"doctorId,omitempty"`
	SlotID         string            `json:"slotId,omitempty"`
	Token          string            `json:"token,omitempty"`
	Complaints     string            `json:"complaints"`
	Vitals         map[string]string `json:"vitals"`
	Prescriptions  []Prescription    `json:"prescriptions"`
	Investigations []Investigation   `json:"investigations"`
	Diagnosis      string            `json:"diagnosis"`
	Notes          string            `json:"notes"`
	Status         VisitStatus       `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
}

type DoctorSession struct {
	DoctorID string    `json:"doctorId"`
	Username string    `json:"username"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Persisted-state keys. Slot collections are partitioned per doctor; the
// token sequence is partitioned per doctor and calendar day.
const (
	keyDoctors       = "doctors"
	keyDoctorTypes   = "doctor_types"
	keyPatients      = "patient_registration_patients"
	keyVisits        = "visits"
	keyDoctorSession = "doctor_session"
)

func slotsKey(doctorID string) string {
	return "slots_" + doctorID
}

func tokenSeqKey(doctorID, day string) string {
	return "token_seq_" + doctorID + "_" + day
}
