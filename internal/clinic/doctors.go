package clinic

import (
	"context"
	"fmt"
	"strings"
)

// defaultDoctorTypes seeds the type-label list the first time it is read.
var defaultDoctorTypes = []string{"General", "Gynaecology", "Dermatology"}

type RegisterDoctorInput struct {
	Name     string
	Type     string
	Username string
	Password string
}

func (in RegisterDoctorInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: doctor name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	return nil
}

// RegisterDoctor adds a doctor to the registry. Usernames are unique across
// the registry since they are the login key.
func (s *Service) RegisterDoctor(ctx context.Context, in RegisterDoctorInput) (*Doctor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range doctors {
		if d.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}

	doc := Doctor{
		ID:       s.newID("doc_"),
		Name:     strings.TrimSpace(in.Name),
		Type:     strings.TrimSpace(in.Type),
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
	}

	doctors = append(doctors, doc)
	if err := s.saveDoctors(ctx, doctors); err != nil {
		return nil, err
	}

	s.bus.Publish(busEventDoctors(doc.ID))
	return &doc, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return s.loadDoctors(ctx)
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}

// UpdateDoctor edits name and type. Credentials and id are fixed at
// registration.
func (s *Service) UpdateDoctor(ctx context.Context, id, name, doctorType string) (*Doctor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: doctor name is required", ErrInvalidArgument)
	}

	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doctors {
		if doctors[i].ID != id {
			continue
		}
		doctors[i].Name = strings.TrimSpace(name)
		doctors[i].Type = strings.TrimSpace(doctorType)
		if err := s.saveDoctors(ctx, doctors); err != nil {
			return nil, err
		}
		s.bus.Publish(busEventDoctors(id))
		return &doctors[i], nil
	}

	return nil, ErrDoctorNotFound
}

// DoctorTypes returns the list of type labels, seeding the defaults when
// none have been stored yet.
func (s *Service) DoctorTypes(ctx context.Context) ([]string, error) {
	var types []string
	found, err := s.store.Get(ctx, keyDoctorTypes, &types)
	if err != nil {
		return nil, fmt.Errorf("load doctor types: %w", err)
	}
	if !found {
		return append([]string(nil), defaultDoctorTypes...), nil
	}
	return types, nil
}

// AddDoctorType appends a label unless it is already present.
func (s *Service) AddDoctorType(ctx context.Context, label string) ([]string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, fmt.Errorf("%w: type label is required", ErrInvalidArgument)
	}

	types, err := s.DoctorTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if strings.EqualFold(t, label) {
			return types, nil
		}
	}

	types = append(types, label)
	if err := s.store.Set(ctx, keyDoctorTypes, types); err != nil {
		return nil, fmt.Errorf("save doctor types: %w", err)
	}
	return types, nil
}
