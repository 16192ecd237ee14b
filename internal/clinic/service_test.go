package clinic

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/bus"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

// 2026-03-10 is a Tuesday.
var testNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

// fixture wires a service over a fresh in-memory store with a controllable
// clock and sequential ids.
type fixture struct {
	svc     *Service
	store   *storage.MemoryStore
	bus     *bus.Bus
	now     time.Time
	doctors int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: storage.NewMemoryStore(),
		bus:   bus.New(),
		now:   testNow,
	}

	n := 0
	f.svc = NewService(f.store, f.bus, zerolog.Nop(),
		WithClock(func() time.Time { return f.now }),
		WithIDFunc(func(prefix string) string {
			n++
			return fmt.Sprintf("%s%03d", prefix, n)
		}),
	)
	return f
}

func (f *fixture) doctor(t *testing.T) *Doctor {
	t.Helper()
	f.doctors++
	doc, err := f.svc.RegisterDoctor(context.Background(), RegisterDoctorInput{
		Name:     "Asha Rao",
		Type:     "General",
		Username: fmt.Sprintf("asha%d", f.doctors),
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}
	return doc
}

func (f *fixture) patient(t *testing.T) *Patient {
	t.Helper()
	pat, err := f.svc.RegisterPatient(context.Background(), PatientInput{
		Name: "Ravi Kumar",
		Age:  42,
	})
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}
	return pat
}

// slot stores one available slot for the doctor starting at the given
// offset from the fixture clock, one hour long.
func (f *fixture) slot(t *testing.T, doctorID string, startIn time.Duration) Slot {
	t.Helper()
	sl := Slot{
		ID:       fmt.Sprintf("slot_%s_%d", doctorID, int(startIn.Minutes())),
		DoctorID: doctorID,
		Start:    f.now.Add(startIn),
		End:      f.now.Add(startIn + time.Hour),
		Status:   SlotAvailable,
	}
	if _, err := f.svc.MergeSlots(context.Background(), doctorID, []Slot{sl}); err != nil {
		t.Fatalf("merge slot: %v", err)
	}
	return sl
}
