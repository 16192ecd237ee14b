package clinic

import (
	"context"
	"errors"
	"sort"
)

type CreateVisitInput struct {
	PatientID  string
	DoctorID   string
	SlotID     string
	Token      string
	Complaints string
	Status     VisitStatus // defaults to draft
}

// CreateVisit opens a visit record. When patient or doctor are missing but a
// slot id is present, the missing side is resolved by scanning the doctors'
// slot collections for the slot. Clinical sub-records start zeroed.
func (s *Service) CreateVisit(ctx context.Context, in CreateVisitInput) (*Visit, error) {
	patientID := in.PatientID
	doctorID := in.DoctorID

	if (patientID == "" || doctorID == "") && in.SlotID != "" {
		if ownerID, slots, idx, err := s.findSlot(ctx, in.SlotID); err == nil {
			if doctorID == "" {
				doctorID = ownerID
			}
			if patientID == "" {
				patientID = slots[idx].PatientID
			}
		} else if !errors.Is(err, ErrSlotNotFound) {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = VisitDraft
	}

	visits, err := s.loadVisits(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visit := Visit{
		ID:             s.newID("visit_"),
		PatientID:      patientID,
		DoctorID:       doctorID,
		SlotID:         in.SlotID,
		Token:          in.Token,
		Complaints:     in.Complaints,
		Vitals:         map[string]string{},
		Prescriptions:  []Prescription{},
		Investigations: []Investigation{},
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	visits = append(visits, visit)
	if err := s.saveVisits(ctx, visits); err != nil {
		return nil, err
	}

	s.bus.Publish(busEventVisits(visit.ID, patientID, doctorID))
	return &visit, nil
}

// AcknowledgeSlot is the doctor-side entry into a booked appointment: it
// opens an acknowledged visit carrying the slot's patient and token.
func (s *Service) AcknowledgeSlot(ctx context.Context, slotID string) (*Visit, error) {
	doctorID, slots, idx, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	slot := slots[idx]
	if slot.Status != SlotBooked {
		return nil, ErrSlotNotBooked
	}

	return s.CreateVisit(ctx, CreateVisitInput{
		PatientID: slot.PatientID,
		DoctorID:  doctorID,
		SlotID:    slot.ID,
		Token:     slot.Token,
		Status:    VisitAcknowledged,
	})
}

func (s *Service) GetVisit(ctx context.Context, id string) (*Visit, error) {
	visits, err := s.loadVisits(ctx)
	if err != nil {
		return nil, err
	}
	for i := range visits {
		if visits[i].ID == id {
			return &visits[i], nil
		}
	}
	return nil, ErrVisitNotFound
}

// VisitPatch carries the fields a visit update may change. Nil pointers and
// nil slices/maps leave the stored value alone.
type VisitPatch struct {
	Complaints     *string
	Vitals         map[string]string
	Prescriptions  []Prescription
	Investigations []Investigation
	Diagnosis      *string
	Notes          *string
	Status         *VisitStatus
}

// UpdateVisit merges the patch into the stored visit. A transition to
// completed stamps completedAt when it is not already set; updatedAt always
// refreshes. Update never creates: a missing id is ErrVisitNotFound.
func (s *Service) UpdateVisit(ctx context.Context, id string, patch VisitPatch) (*Visit, error) {
	visits, err := s.loadVisits(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range visits {
		if visits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrVisitNotFound
	}

	v := &visits[idx]
	if patch.Complaints != nil {
		v.Complaints = *patch.Complaints
	}
	if patch.Vitals != nil {
		v.Vitals = patch.Vitals
	}
	if patch.Prescriptions != nil {
		v.Prescriptions = patch.Prescriptions
	}
	if patch.Investigations != nil {
		v.Investigations = patch.Investigations
	}
	if patch.Diagnosis != nil {
		v.Diagnosis = *patch.Diagnosis
	}
	if patch.Notes != nil {
		v.Notes = *patch.Notes
	}
	if patch.Status != nil {
		v.Status = *patch.Status
	}

	now := s.now()
	v.UpdatedAt = now
	if v.Status == VisitCompleted && v.CompletedAt == nil {
		v.CompletedAt = &now
	}

	if err := s.saveVisits(ctx, visits); err != nil {
		return nil, err
	}

	s.bus.Publish(busEventVisits(v.ID, v.PatientID, v.DoctorID))
	updated := *v
	return &updated, nil
}

// CompleteVisit closes the encounter: the visit is marked completed, and
// when a slot is linked the completion flows through the slot lifecycle and
// on to the patient's appointment entry. A slot that already left the booked
// state does not fail the visit completion.
func (s *Service) CompleteVisit(ctx context.Context, id string, patch VisitPatch) (*Visit, error) {
	completed := VisitCompleted
	patch.Status = &completed

	visit, err := s.UpdateVisit(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if visit.SlotID != "" {
		if _, err := s.MarkCompleted(ctx, visit.SlotID); err != nil {
			if errors.Is(err, ErrSlotNotBooked) || errors.Is(err, ErrSlotNotFound) {
				s.log.Warn().
					Str("visit_id", visit.ID).
					Str("slot_id", visit.SlotID).
					Err(err).
					Msg("visit completed but linked slot could not be marked completed")
			} else {
				return nil, err
			}
		}
	}

	return visit, nil
}

// ListVisitsForPatient returns the patient's visits newest first. Callers
// split upcoming from history by filtering on status.
func (s *Service) ListVisitsForPatient(ctx context.Context, patientID string) ([]Visit, error) {
	if patientID == "" {
		return []Visit{}, nil
	}

	visits, err := s.loadVisits(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Visit, 0, len(visits))
	for _, v := range visits {
		if v.PatientID == patientID {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}
