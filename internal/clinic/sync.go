package clinic

import (
	"context"
	"errors"
)

// The synchronizer keeps the patient's denormalized appointment history in
// step with the authoritative slot. Everything here is an upsert keyed by
// id; nothing is ever deleted.

// syncBooking writes (or refreshes) the appointment projection for a just
// booked slot into the owning patient record.
func (s *Service) syncBooking(ctx context.Context, slot Slot) error {
	patients, err := s.loadPatients(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range patients {
		if patients[i].ID == slot.PatientID {
			idx = i
			break
		}
	}
	if idx == -1 {
		// The slot carries a patient id the registry does not know. Nothing
		// to project onto; the slot stays the source of truth.
		s.log.Warn().
			Str("slot_id", slot.ID).
			Str("patient_id", slot.PatientID).
			Msg("booked slot references unknown patient, appointment entry not written")
		return nil
	}

	appt := s.appointmentFromSlot(ctx, slot)

	entries := patients[idx].Appointments
	replaced := false
	for i := range entries {
		if entries[i].SlotID == slot.ID {
			appt.ID = entries[i].ID
			entries[i] = appt
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, appt)
	}
	patients[idx].Appointments = entries

	if err := s.savePatients(ctx, patients); err != nil {
		return err
	}
	s.bus.Publish(busEventPatients(patients[idx].ID))
	return nil
}

// syncCompletion marks the patient's appointment entry for the slot as
// completed. When no entry matches the slot, a minimal one is synthesized
// from the slot instead of dropping the completion; that path usually means
// the entry was never written at booking time, so it is logged loudly.
func (s *Service) syncCompletion(ctx context.Context, slot Slot) error {
	if slot.PatientID == "" {
		return nil
	}

	patients, err := s.loadPatients(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range patients {
		if patients[i].ID == slot.PatientID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.log.Warn().
			Str("slot_id", slot.ID).
			Str("patient_id", slot.PatientID).
			Msg("completed slot references unknown patient, completion not mirrored")
		return nil
	}

	now := s.now()
	entries := patients[idx].Appointments
	matched := false
	for i := range entries {
		if entries[i].SlotID == slot.ID {
			entries[i].Status = SlotCompleted
			entries[i].CompletedAt = &now
			matched = true
			break
		}
	}
	if !matched {
		appt := s.appointmentFromSlot(ctx, slot)
		appt.Status = SlotCompleted
		appt.CompletedAt = &now
		entries = append(entries, appt)
		s.log.Warn().
			Str("slot_id", slot.ID).
			Str("patient_id", slot.PatientID).
			Msg("no appointment entry matched completed slot, synthesized one from the slot")
	}
	patients[idx].Appointments = entries

	if err := s.savePatients(ctx, patients); err != nil {
		return err
	}
	s.bus.Publish(busEventPatients(patients[idx].ID))
	return nil
}

func (s *Service) appointmentFromSlot(ctx context.Context, slot Slot) Appointment {
	doctorName := ""
	if doc, err := s.GetDoctor(ctx, slot.DoctorID); err == nil {
		doctorName = doc.Name
	} else if !errors.Is(err, ErrDoctorNotFound) {
		s.log.Warn().Err(err).Str("doctor_id", slot.DoctorID).Msg("could not resolve doctor name for appointment entry")
	}

	bookedAt := s.now()
	if slot.BookedAt != nil {
		bookedAt = *slot.BookedAt
	}

	return Appointment{
		ID:         s.newID("appt_"),
		DoctorID:   slot.DoctorID,
		DoctorName: doctorName,
		SlotID:     slot.ID,
		Token:      slot.Token,
		TokenDay:   slot.TokenDay,
		Start:      slot.Start,
		End:        slot.End,
		BookedAt:   bookedAt,
		Status:     slot.Status,
	}
}
