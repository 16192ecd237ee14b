// Package clinic is the domain core: doctor and patient registries, the
// per-doctor slot collections and their lifecycle, token issuance, the visit
// ledger, and the synchronizer that mirrors slot state into the owning
// patient's appointment history.
//
// Every operation is a read-modify-write against the shared store with no
// locking; when two independent writers race on the same key the second
// write wins. That is an accepted property of the system, not a bug to fix
// here.
package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/bus"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
	"github.com/clinicdesk/clinic-scheduling/internal/uid"
)

type Service struct {
	store storage.Store
	bus   *bus.Bus
	log   zerolog.Logger
	now   func() time.Time
	newID func(prefix string) string
}

type Option func(*Service)

// WithClock overrides the wall clock. Date validity checks, display
// categories and token days all flow from it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides id generation for deterministic tests.
func WithIDFunc(newID func(prefix string) string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store storage.Store, b *bus.Bus, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		bus:   b,
		log:   log,
		now:   time.Now,
		newID: uid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection load/save helpers. Absent keys read as empty collections.

func (s *Service) loadDoctors(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if _, err := s.store.Get(ctx, keyDoctors, &doctors); err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) saveDoctors(ctx context.Context, doctors []Doctor) error {
	if err := s.store.Set(ctx, keyDoctors, doctors); err != nil {
		return fmt.Errorf("save doctors: %w", err)
	}
	return nil
}

func (s *Service) loadPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if _, err := s.store.Get(ctx, keyPatients, &patients); err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	return patients, nil
}

func (s *Service) savePatients(ctx context.Context, patients []Patient) error {
	if err := s.store.Set(ctx, keyPatients, patients); err != nil {
		return fmt.Errorf("save patients: %w", err)
	}
	return nil
}

func (s *Service) loadSlots(ctx context.Context, doctorID string) ([]Slot, error) {
	var slots []Slot
	if _, err := s.store.Get(ctx, slotsKey(doctorID), &slots); err != nil {
		return nil, fmt.Errorf("load slots for doctor %s: %w", doctorID, err)
	}
	return slots, nil
}

func (s *Service) saveSlots(ctx context.Context, doctorID string, slots []Slot) error {
	if err := s.store.Set(ctx, slotsKey(doctorID), slots); err != nil {
		return fmt.Errorf("save slots for doctor %s: %w", doctorID, err)
	}
	return nil
}

func (s *Service) loadVisits(ctx context.Context) ([]Visit, error) {
	var visits []Visit
	if _, err := s.store.Get(ctx, keyVisits, &visits); err != nil {
		return nil, fmt.Errorf("load visits: %w", err)
	}
	return visits, nil
}

func (s *Service) saveVisits(ctx context.Context, visits []Visit) error {
	if err := s.store.Set(ctx, keyVisits, visits); err != nil {
		return fmt.Errorf("save visits: %w", err)
	}
	return nil
}
