package clinic

import (
	"context"
	"errors"
	"fmt"
)

// Login compares the supplied credentials against the doctor registry in
// plaintext (this is a demo system, not an auth backend) and records the
// session at the doctor_session key.
func (s *Service) Login(ctx context.Context, username, password string) (*Doctor, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doctors {
		if doctors[i].Username == username && doctors[i].Password == password {
			sess := DoctorSession{
				DoctorID: doctors[i].ID,
				Username: doctors[i].Username,
				LoggedAt: s.now(),
			}
			if err := s.store.Set(ctx, keyDoctorSession, sess); err != nil {
				return nil, fmt.Errorf("save session: %w", err)
			}
			return &doctors[i], nil
		}
	}

	return nil, ErrInvalidCredentials
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, keyDoctorSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentDoctor resolves the active session against the registry. A session
// pointing at a doctor that no longer exists is cleared and reported stale.
func (s *Service) CurrentDoctor(ctx context.Context) (*Doctor, error) {
	var sess DoctorSession
	found, err := s.store.Get(ctx, keyDoctorSession, &sess)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, ErrNoSession
	}

	doc, err := s.GetDoctor(ctx, sess.DoctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			_ = s.Logout(ctx)
			return nil, ErrStaleSession
		}
		return nil, err
	}
	return doc, nil
}
