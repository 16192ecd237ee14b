package clinic

import (
	"context"
	"sort"
)

// MergeResult reports what a merge did with the candidate slots.
type MergeResult struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped,omitempty"` // candidate ids rejected for overlap
	Total   int      `json:"total"`             // collection size after the merge
}

// MergeSlots folds freshly generated slots into the doctor's collection.
// Merge key is the slot id; generated ids are always fresh, so the merge is
// effectively an append. Candidates whose [start,end) overlaps an existing
// slot, or an already-accepted candidate, are skipped rather than failing
// the whole merge; a doctor's slots never overlap in time. The collection
// is re-sorted by ascending start after every merge.
func (s *Service) MergeSlots(ctx context.Context, doctorID string, candidates []Slot) (*MergeResult, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	slots, err := s.loadSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]struct{}, len(slots))
	for _, sl := range slots {
		byID[sl.ID] = struct{}{}
	}

	res := &MergeResult{}
	for _, cand := range candidates {
		if _, exists := byID[cand.ID]; exists {
			slots = replaceSlot(slots, cand)
			continue
		}
		if overlapsAny(slots, cand) {
			res.Skipped = append(res.Skipped, cand.ID)
			continue
		}
		cand.DoctorID = doctorID
		slots = append(slots, cand)
		byID[cand.ID] = struct{}{}
		res.Added++
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	if err := s.saveSlots(ctx, doctorID, slots); err != nil {
		return nil, err
	}
	res.Total = len(slots)

	s.bus.Publish(busEventSlots(doctorID))
	return res, nil
}

func replaceSlot(slots []Slot, sl Slot) []Slot {
	for i := range slots {
		if slots[i].ID == sl.ID {
			slots[i] = sl
			break
		}
	}
	return slots
}

func overlapsAny(slots []Slot, cand Slot) bool {
	for _, sl := range slots {
		if cand.Start.Before(sl.End) && sl.Start.Before(cand.End) {
			return true
		}
	}
	return false
}

// ListSlots returns the doctor's collection in stored (start-ascending)
// order.
func (s *Service) ListSlots(ctx context.Context, doctorID string) ([]Slot, error) {
	if _, err := s.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.loadSlots(ctx, doctorID)
}

// SlotSummary counts the doctor's slots per display category at the current
// instant.
func (s *Service) SlotSummary(ctx context.Context, doctorID string) (*SlotSummary, error) {
	slots, err := s.ListSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var sum SlotSummary
	for _, sl := range slots {
		switch sl.Category(now) {
		case CategoryAvailable:
			sum.Available++
		case CategoryBooked:
			sum.Booked++
		case CategoryExpired:
			sum.Expired++
		case CategoryCompleted:
			sum.Completed++
		}
	}
	return &sum, nil
}

// findSlot locates a slot by id across every doctor's collection, returning
// the owning doctor id, the collection it lives in, and its index. Linear
// scan over all doctors; collections are small in this system.
func (s *Service) findSlot(ctx context.Context, slotID string) (doctorID string, slots []Slot, idx int, err error) {
	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return "", nil, 0, err
	}
	for _, d := range doctors {
		slots, err := s.loadSlots(ctx, d.ID)
		if err != nil {
			return "", nil, 0, err
		}
		for i := range slots {
			if slots[i].ID == slotID {
				return d.ID, slots, i, nil
			}
		}
	}
	return "", nil, 0, ErrSlotNotFound
}

type BookingInput struct {
	PatientID string
}

// Book claims an available slot for a patient: it stamps the patient and a
// fresh per-doctor daily token onto the slot, flips it to booked, and
// mirrors the booking into the patient's appointment history.
//
// The precondition is re-checked against the stored slot: status must still
// be available and the end time strictly in the future. When it is not, the
// slot is left untouched, ErrSlotNotAvailable comes back, and a slots
// notification fires anyway so stale availability views refresh.
func (s *Service) Book(ctx context.Context, slotID string, in BookingInput) (*Slot, error) {
	if in.PatientID == "" {
		return nil, ErrPatientNotFound
	}
	patient, err := s.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	doctorID, slots, idx, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !slots[idx].Bookable(now) {
		s.bus.Publish(busEventSlots(doctorID))
		return nil, ErrSlotNotAvailable
	}

	token, day, err := s.IssueToken(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	bookedAt := now
	slots[idx].Status = SlotBooked
	slots[idx].PatientID = patient.ID
	slots[idx].PatientName = patient.Name
	slots[idx].Token = token
	slots[idx].TokenDay = day
	slots[idx].BookedAt = &bookedAt

	if err := s.saveSlots(ctx, doctorID, slots); err != nil {
		return nil, err
	}
	s.bus.Publish(busEventSlots(doctorID))

	if err := s.syncBooking(ctx, slots[idx]); err != nil {
		return nil, err
	}

	booked := slots[idx]
	return &booked, nil
}

// MarkCompleted moves a booked slot to completed and propagates the change
// to the patient's appointment entry.
func (s *Service) MarkCompleted(ctx context.Context, slotID string) (*Slot, error) {
	doctorID, slots, idx, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if slots[idx].Status != SlotBooked {
		return nil, ErrSlotNotBooked
	}

	slots[idx].Status = SlotCompleted
	if err := s.saveSlots(ctx, doctorID, slots); err != nil {
		return nil, err
	}
	s.bus.Publish(busEventSlots(doctorID))

	if err := s.syncCompletion(ctx, slots[idx]); err != nil {
		return nil, err
	}

	completed := slots[idx]
	return &completed, nil
}
