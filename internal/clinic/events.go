package clinic

import "github.com/clinicdesk/clinic-scheduling/internal/bus"

func busEventDoctors(doctorID string) bus.Event {
	return bus.Event{Topic: bus.TopicDoctorsUpdated, DoctorID: doctorID}
}

func busEventSlots(doctorID string) bus.Event {
	return bus.Event{Topic: bus.TopicSlotsUpdated, DoctorID: doctorID}
}

func busEventPatients(patientID string) bus.Event {
	return bus.Event{Topic: bus.TopicPatientsUpdated, PatientID: patientID}
}

func busEventVisits(visitID, patientID, doctorID string) bus.Event {
	return bus.Event{
		Topic:     bus.TopicVisitsUpdated,
		VisitID:   visitID,
		PatientID: patientID,
		DoctorID:  doctorID,
	}
}
