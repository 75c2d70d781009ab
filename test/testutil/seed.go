package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
	"github.com/privnurse/privnurse/internal/repo"
)

func SeedUser(t *testing.T, db *sqlx.DB, role string) int64 {
	t.Helper()
	users := repo.NewUserRepo(db)
	id, err := users.Create(context.Background(), &model.User{
		Username:     "nurse-" + NewTestID(),
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func SeedPatient(t *testing.T, db *sqlx.DB, createdBy int64) int64 {
	t.Helper()
	patients := repo.NewPatientRepo(db)
	id, err := patients.Create(context.Background(), &model.Patient{
		MedicalRecordNo: "MRN-" + NewTestID(),
		PatientCategory: "NHI General",
		Name:            "Test Patient",
		Gender:          "F",
		Department:      "Endocrinology",
		Birthday:        time.Date(1960, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:          model.PatientStatusHospitalized,
		CreatedBy:       &createdBy,
	})
	if err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return id
}
