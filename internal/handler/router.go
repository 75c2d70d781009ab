package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/middleware"
)

type RouterDeps struct {
	Auth            *AuthHandler
	Patients        *PatientHandler
	Consultations   *ConsultationHandler
	Discharges      *DischargeHandler
	Nursing         *NursingHandler
	Labs            *LabHandler
	AI              *AIHandler
	Audio           *AudioHandler
	JWTSecret       []byte
	AudioRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.GET("/auth/me", deps.Auth.Me)

	adminGroup := authGroup.Group("")
	adminGroup.Use(middleware.RequireAdmin())
	adminGroup.GET("/auth/users", deps.Auth.ListUsers)
	adminGroup.POST("/auth/users", deps.Auth.CreateUser)
	adminGroup.POST("/auth/users/:id/reset-password", deps.Auth.ResetPassword)

	authGroup.POST("/patients", deps.Patients.Create)
	authGroup.GET("/patients", deps.Patients.List)
	authGroup.GET("/patients/:id", deps.Patients.Get)
	authGroup.PUT("/patients/:id", deps.Patients.Update)
	authGroup.DELETE("/patients/:id", deps.Patients.Delete)
	authGroup.GET("/patients/:id/history", deps.Patients.History)

	authGroup.POST("/consultations", deps.Consultations.Create)
	authGroup.GET("/consultations", deps.Consultations.List)
	authGroup.GET("/consultations/:id", deps.Consultations.Get)
	authGroup.PUT("/consultations/:id", deps.Consultations.Update)
	authGroup.DELETE("/consultations/:id", deps.Consultations.Delete)

	authGroup.POST("/discharge-notes", deps.Discharges.Create)
	authGroup.GET("/discharge-notes", deps.Discharges.List)
	authGroup.GET("/discharge-notes/:id", deps.Discharges.Get)
	authGroup.PUT("/discharge-notes/:id", deps.Discharges.Update)
	authGroup.DELETE("/discharge-notes/:id", deps.Discharges.Delete)
	adminGroup.POST("/discharge-notes/:id/approve", deps.Discharges.Approve)

	authGroup.POST("/nursing-notes", deps.Nursing.Create)
	authGroup.GET("/nursing-notes", deps.Nursing.List)
	authGroup.GET("/nursing-notes/:id", deps.Nursing.Get)
	authGroup.PUT("/nursing-notes/:id", deps.Nursing.Update)
	authGroup.DELETE("/nursing-notes/:id", deps.Nursing.Delete)

	authGroup.POST("/lab-reports", deps.Labs.Create)
	authGroup.GET("/lab-reports", deps.Labs.List)
	authGroup.GET("/lab-reports/:id", deps.Labs.Get)
	authGroup.DELETE("/lab-reports/:id", deps.Labs.Delete)

	authGroup.POST("/ai/gen-summary", deps.AI.GenSummary)
	authGroup.POST("/ai/gen-validation", deps.AI.GenValidation)
	authGroup.POST("/ai/submit-confirmation", deps.AI.SubmitConfirmation)
	authGroup.GET("/ai/inferences", deps.AI.ListInferences)
	authGroup.GET("/ai/tags", deps.AI.Tags)
	authGroup.GET("/ai/active-models", deps.AI.GetActiveModels)
	adminGroup.POST("/ai/active-models", deps.AI.UpdateActiveModels)

	audioGroup := authGroup.Group("")
	audioGroup.Use(middleware.RateLimit(deps.AudioRateWindow))
	audioGroup.POST("/audio/transcribe", deps.Audio.Transcribe)
	authGroup.GET("/audio/test-connection", deps.Audio.TestConnection)
}
