package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type PatientInput struct {
	Name     string
	Age      int
	DoctorID string // optional primary doctor
}

func (in PatientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: patient name is required", ErrInvalidArgument)
	}
	if in.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidArgument)
	}
	return nil
}

func (s *Service) RegisterPatient(ctx context.Context, in PatientInput) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.DoctorID != "" {
		if _, err := s.GetDoctor(ctx, in.DoctorID); err != nil {
			return nil, err
		}
	}

	patients, err := s.loadPatients(ctx)
	if err != nil {
		return nil, err
	}

	pat := Patient{
		ID:           s.newID("pat_"),
		Name:         strings.TrimSpace(in.Name),
		Age:          in.Age,
		DoctorID:     in.DoctorID,
		CreatedAt:    s.now(),
		Appointments: []Appointment{},
	}

	patients = append(patients, pat)
	if err := s.savePatients(ctx, patients); err != nil {
		return nil, err
	}

	s.bus.Publish(busEventPatients(pat.ID))
	return &pat, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.loadPatients(ctx)
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	patients, err := s.loadPatients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, ErrPatientNotFound
}

// UpdatePatient edits name, age and primary doctor. The appointment history
// is owned by the synchronizer and left untouched.
func (s *Service) UpdatePatient(ctx context.Context, id string, in PatientInput) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.DoctorID != "" {
		if _, err := s.GetDoctor(ctx, in.DoctorID); err != nil {
			if errors.Is(err, ErrDoctorNotFound) {
				return nil, fmt.Errorf("%w: unknown doctor %s", ErrInvalidArgument, in.DoctorID)
			}
			return nil, err
		}
	}

	patients, err := s.loadPatients(ctx)
	if err != nil {
		return nil, err
	}

	for i := range patients {
		if patients[i].ID != id {
			continue
		}
		patients[i].Name = strings.TrimSpace(in.Name)
		patients[i].Age = in.Age
		patients[i].DoctorID = in.DoctorID
		if err := s.savePatients(ctx, patients); err != nil {
			return nil, err
		}
		s.bus.Publish(busEventPatients(id))
		return &patients[i], nil
	}

	return nil, ErrPatientNotFound
}
