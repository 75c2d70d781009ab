package handler_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/ai"
	"github.com/privnurse/privnurse/internal/config"
	"github.com/privnurse/privnurse/internal/filestore"
	"github.com/privnurse/privnurse/internal/handler"
	"github.com/privnurse/privnurse/internal/model"
	"github.com/privnurse/privnurse/internal/pkg/jwt"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
	"github.com/privnurse/privnurse/test/testutil"
)

var testJWTSecret = []byte("test-secret")

func setupRouter(t *testing.T) (http.Handler, func(), int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)

	userRepo := repo.NewUserRepo(db)
	patientRepo := repo.NewPatientRepo(db)
	historyRepo := repo.NewPatientHistoryRepo(db)
	consultationRepo := repo.NewConsultationRepo(db)
	dischargeRepo := repo.NewDischargeRepo(db)
	nursingRepo := repo.NewNursingRepo(db)
	labRepo := repo.NewLabRepo(db)
	modelRepo := repo.NewAIModelRepo(db)
	inferenceRepo := repo.NewInferenceRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	tmpDir, err := os.MkdirTemp("", "privnurse-audio-*")
	require.NoError(t, err)
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": tmpDir},
	})
	require.NoError(t, err)

	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, auditService, string(testJWTSecret), time.Hour)
	patientService := service.NewPatientService(patientRepo, historyRepo, auditService)
	consultationService := service.NewConsultationService(consultationRepo, patientRepo)
	dischargeService := service.NewDischargeService(dischargeRepo, patientRepo, auditService)
	nursingService := service.NewNursingService(nursingRepo, patientRepo)
	labService := service.NewLabService(labRepo, patientRepo)
	modelService := service.NewModelService(modelRepo)
	confirmationService := service.NewConfirmationService(inferenceRepo, consultationRepo, modelService, auditService)
	provider := ai.NewOllamaProvider("http://127.0.0.1:1", time.Second)
	generationService := service.NewGenerationService(provider, modelService, 8000)
	transcribeService := service.NewTranscribeService(patientRepo, store, config.AudioConfig{
		APIURL:         "http://127.0.0.1:1",
		TimeoutSeconds: 1,
		MaxUploadBytes: 10 << 20,
	})

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Patients:      handler.NewPatientHandler(patientService),
		Consultations: handler.NewConsultationHandler(consultationService),
		Discharges:    handler.NewDischargeHandler(dischargeService),
		Nursing:       handler.NewNursingHandler(nursingService),
		Labs:          handler.NewLabHandler(labService),
		AI:            handler.NewAIHandler(generationService, modelService, confirmationService),
		Audio:         handler.NewAudioHandler(transcribeService),
		JWTSecret:     testJWTSecret,
	}

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"), deps)

	userID := testutil.SeedUser(t, db, model.RoleUser)
	return engine, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}, userID
}

func bearerToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, "tester", model.RoleUser, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
