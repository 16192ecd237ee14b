// seed fills the configured store with demo doctors, patients and slot
// schedules so the API has something to serve on a fresh install.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/bus"
	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/config"
	"github.com/clinicdesk/clinic-scheduling/internal/schedule"
	"github.com/clinicdesk/clinic-scheduling/internal/storage"
)

const (
	doctorCount  = 5
	patientCount = 25
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Info().Msg("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store connection error")
	}
	defer closeStore()

	gofakeit.Seed(time.Now().UnixNano())

	svc := clinic.NewService(store, bus.New(), log)

	doctors, err := seedDoctors(ctx, svc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed doctors")
	}
	if err := seedPatients(ctx, svc, doctors, log); err != nil {
		log.Fatal().Err(err).Msg("seed patients")
	}
	if err := seedSlots(ctx, svc, doctors, log); err != nil {
		log.Fatal().Err(err).Msg("seed slots")
	}

	log.Info().Msg("seed complete")
}

func seedDoctors(ctx context.Context, svc *clinic.Service, log zerolog.Logger) ([]clinic.Doctor, error) {
	log.Info().Int("count", doctorCount).Msg("seeding doctors")

	types, err := svc.DoctorTypes(ctx)
	if err != nil {
		return nil, err
	}

	doctors := make([]clinic.Doctor, 0, doctorCount)
	for i := 0; i < doctorCount; i++ {
		name := gofakeit.Name()
		username := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprint(i)

		doc, err := svc.RegisterDoctor(ctx, clinic.RegisterDoctorInput{
			Name:     name,
			Type:     types[gofakeit.Number(0, len(types)-1)],
			Username: username,
			Password: gofakeit.Password(true, true, true, false, false, 10),
		})
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *doc)
	}

	log.Info().Msg("doctors seeded")
	return doctors, nil
}

func seedPatients(ctx context.Context, svc *clinic.Service, doctors []clinic.Doctor, log zerolog.Logger) error {
	log.Info().Int("count", patientCount).Msg("seeding patients")

	for i := 0; i < patientCount; i++ {
		doctorID := ""
		if gofakeit.Bool() {
			doctorID = doctors[gofakeit.Number(0, len(doctors)-1)].ID
		}
		_, err := svc.RegisterPatient(ctx, clinic.PatientInput{
			Name:     gofakeit.Name(),
			Age:      gofakeit.Number(1, 90),
			DoctorID: doctorID,
		})
		if err != nil {
			return err
		}
	}

	log.Info().Msg("patients seeded")
	return nil
}

func seedSlots(ctx context.Context, svc *clinic.Service, doctors []clinic.Doctor, log zerolog.Logger) error {
	gen := schedule.NewGenerator()
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	for _, doc := range doctors {
		res, err := gen.Generate(doc.ID, schedule.Request{
			Mode:      schedule.ModeDaily,
			From:      "09:00",
			To:        "13:00",
			Increment: 30,
			Date:      tomorrow,
		})
		if err != nil {
			return err
		}
		merge, err := svc.MergeSlots(ctx, doc.ID, res.Slots)
		if err != nil {
			return err
		}
		log.Info().Str("doctor_id", doc.ID).Int("added", merge.Added).Msg("slots seeded")
	}

	return nil
}
