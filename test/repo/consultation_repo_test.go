package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/model"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/test/testutil"
)

func TestConsultationRepoListPagination(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	userID := testutil.SeedUser(t, db, model.RoleUser)
	patientID := testutil.SeedPatient(t, db, userID)

	consultations := repo.NewConsultationRepo(db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := consultations.Create(context.Background(), &model.ConsultationRecord{
			PatientID:        patientID,
			ConsultationDate: base.AddDate(0, 0, i),
			ConsultationType: "initial",
			OriginalContent:  fmt.Sprintf("consult request %d", i),
			Status:           model.ConsultationStatusDraft,
			CreatedBy:        userID,
		})
		require.NoError(t, err)
	}

	page1, total, err := consultations.List(context.Background(), repo.ConsultationFilter{
		PatientID: patientID,
		Page:      1,
		Limit:     2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page1, 2)
	require.Equal(t, "consult request 2", page1[0].OriginalContent)
	require.Equal(t, "consult request 1", page1[1].OriginalContent)

	page2, total, err := consultations.List(context.Background(), repo.ConsultationFilter{
		PatientID: patientID,
		Page:      2,
		Limit:     2,
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page2, 1)
	require.Equal(t, "consult request 0", page2[0].OriginalContent)
}

func TestConsultationRepoCreateStoresConsultationDate(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	userID := testutil.SeedUser(t, db, model.RoleUser)
	patientID := testutil.SeedPatient(t, db, userID)

	consultations := repo.NewConsultationRepo(db)
	date := time.Date(2025, 11, 20, 14, 30, 0, 0, time.UTC)
	id, err := consultations.Create(context.Background(), &model.ConsultationRecord{
		PatientID:        patientID,
		ConsultationDate: date,
		ConsultationType: "follow_up",
		OriginalContent:  "dated consult",
		Status:           model.ConsultationStatusDraft,
		CreatedBy:        userID,
	})
	require.NoError(t, err)

	fetched, err := consultations.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.WithinDuration(t, date, fetched.ConsultationDate, time.Second)
}

func TestConsultationRepoFindDuplicate(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	userID := testutil.SeedUser(t, db, model.RoleUser)
	patientID := testutil.SeedPatient(t, db, userID)

	consultations := repo.NewConsultationRepo(db)
	content := "unique consult " + testutil.NewTestID()
	_, err := consultations.Create(context.Background(), &model.ConsultationRecord{
		PatientID:        patientID,
		ConsultationDate: time.Now(),
		ConsultationType: "initial",
		OriginalContent:  content,
		Status:           model.ConsultationStatusConfirmed,
		CreatedBy:        userID,
	})
	require.NoError(t, err)

	found, err := consultations.FindDuplicate(context.Background(), map[string]interface{}{
		"patient_id":       patientID,
		"original_content": content,
	})
	require.NoError(t, err)
	require.True(t, found)

	found, err = consultations.FindDuplicate(context.Background(), map[string]interface{}{
		"patient_id":       patientID,
		"original_content": "something else entirely",
	})
	require.NoError(t, err)
	require.False(t, found)
}
