package clinic

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegisterPatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t)

	pat, err := f.svc.RegisterPatient(ctx, PatientInput{
		Name:     "Ravi Kumar",
		Age:      42,
		DoctorID: doc.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pat.ID == "" {
		t.Fatal("expected generated id")
	}
	if !pat.CreatedAt.Equal(f.now) {
		t.Fatalf("expected createdAt %v, got %v", f.now, pat.CreatedAt)
	}
	if pat.Appointments == nil || len(pat.Appointments) != 0 {
		t.Fatalf("expected empty non-nil appointment history, got %#v", pat.Appointments)
	}

	got, err := f.svc.GetPatient(ctx, pat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ravi Kumar" || got.Age != 42 || got.DoctorID != doc.ID {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRegisterPatientValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		in      PatientInput
		wantErr error
	}{
		{in: PatientInput{Name: "", Age: 30}, wantErr: ErrInvalidArgument},
		{in: PatientInput{Name: "A", Age: 0}, wantErr: ErrInvalidArgument},
		{in: PatientInput{Name: "A", Age: -1}, wantErr: ErrInvalidArgument},
		{in: PatientInput{Name: "A", Age: 30, DoctorID: "doc_missing"}, wantErr: ErrDoctorNotFound},
	}
	for _, c := range cases {
		if _, err := f.svc.RegisterPatient(ctx, c.in); !errors.Is(err, c.wantErr) {
			t.Fatalf("input %+v: expected %v, got %v", c.in, c.wantErr, err)
		}
	}
}

func TestUpdatePatientPreservesAppointments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t)
	pat := f.patient(t)
	sl := f.slot(t, doc.ID, time.Hour)

	if _, err := f.svc.Book(ctx, sl.ID, BookingInput{PatientID: pat.ID}); err != nil {
		t.Fatalf("book: %v", err)
	}

	updated, err := f.svc.UpdatePatient(ctx, pat.ID, PatientInput{Name: "R. Kumar", Age: 43})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "R. Kumar" || updated.Age != 43 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(updated.Appointments) != 1 {
		t.Fatalf("expected appointment history untouched, got %d entries", len(updated.Appointments))
	}
}

func TestUpdatePatientUnknownDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pat := f.patient(t)

	_, err := f.svc.UpdatePatient(ctx, pat.ID, PatientInput{Name: "A", Age: 30, DoctorID: "doc_missing"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestUpdatePatientNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdatePatient(context.Background(), "pat_missing", PatientInput{Name: "A", Age: 30})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
