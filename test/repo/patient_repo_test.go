package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/test/testutil"
)

func TestPatientRepoListPagination(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	userID := testutil.SeedUser(t, db, model.RoleUser)
	patients := repo.NewPatientRepo(db)

	dept := "Ward-" + testutil.NewTestID()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		admitted := base.AddDate(0, 0, i)
		_, err := patients.Create(context.Background(), &model.Patient{
			MedicalRecordNo: "MRN-" + testutil.NewTestID(),
			PatientCategory: "NHI General",
			Name:            "Patient",
			Gender:          "M",
			Department:      dept,
			Birthday:        time.Date(1955, 2, 3, 0, 0, 0, 0, time.UTC),
			AdmissionTime:   &admitted,
			Status:          model.PatientStatusHospitalized,
			CreatedBy:       &userID,
		})
		require.NoError(t, err)
	}

	page1, total, err := patients.List(context.Background(), repo.PatientFilter{
		Department: dept,
		Page:       1,
		Limit:      2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page1, 2)

	page2, total, err := patients.List(context.Background(), repo.PatientFilter{
		Department: dept,
		Page:       2,
		Limit:      2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page2, 1)
}

func TestPatientRepoGetByIDNotFound(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	patients := repo.NewPatientRepo(db)
	_, err := patients.GetByID(context.Background(), 1<<40)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
