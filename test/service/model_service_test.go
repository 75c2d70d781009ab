package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/model"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
	"github.com/privnurse/privnurse/test/testutil"
)

func TestModelServiceActiveModels(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	models := repo.NewAIModelRepo(db)
	svc := service.NewModelService(models)

	name := "gemma-" + testutil.NewTestID()
	require.NoError(t, svc.UpdateActiveModels(context.Background(), service.ActiveModelsUpdate{
		ConsultationSummaryModel: name,
	}))

	active, err := svc.ActiveModels(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active.ConsultationSummaryModel)
	require.Equal(t, name, *active.ConsultationSummaryModel)

	resolved, err := svc.ActiveModelName(context.Background(), model.ModelTypeConsultationSummary)
	require.NoError(t, err)
	require.Equal(t, name, resolved)
}

func TestModelServiceActiveModelsSurfacesDBErrors(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	svc := service.NewModelService(repo.NewAIModelRepo(db))
	cleanup() // closed connection: lookups must fail loudly, not report all-inactive

	_, err := svc.ActiveModels(context.Background())
	require.Error(t, err)
}
