package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
)

// ActiveModels is the admin-facing view of the per-type active model names.
type ActiveModels struct {
	ConsultationSummaryModel    *string `json:"consultationSummaryModel"`
	ConsultationValidationModel *string `json:"consultationValidationModel"`
	DischargeSummaryModel       *string `json:"dischargeNoteSummaryModel"`
	DischargeValidationModel    *string `json:"dischargeNoteValidationModel"`
	AudioModel                  *string `json:"audioModel"`
}

// ActiveModelsUpdate carries the admin's new assignments; nil fields are
// left untouched.
type ActiveModelsUpdate struct {
	ConsultationSummaryModel    string `json:"consultation_summary_model"`
	ConsultationValidationModel string `json:"consultation_validation_model"`
	DischargeSummaryModel       string `json:"discharge_note_summary_model"`
	DischargeValidationModel    string `json:"discharge_note_validation_model"`
	AudioModel                  string `json:"audio_model"`
}

// ModelService resolves which model name serves each model type. Lookups go
// through a short-lived cache since every generation request needs one.
type ModelService struct {
	models *repo.AIModelRepo
	cache  *expirable.LRU[string, string]
}

func NewModelService(models *repo.AIModelRepo) *ModelService {
	return &ModelService{
		models: models,
		cache:  expirable.NewLRU[string, string](32, nil, 30*time.Second),
	}
}

// ActiveModelName resolves the active model for a type, or
// errors.ErrModelInactive when none is configured.
func (s *ModelService) ActiveModelName(ctx context.Context, modelType string) (string, error) {
	if name, ok := s.cache.Get(modelType); ok {
		return name, nil
	}
	m, err := s.models.GetActiveByType(ctx, modelType)
	if err != nil {
		return "", err
	}
	s.cache.Add(modelType, m.ModelName)
	return m.ModelName, nil
}

func (s *ModelService) ActiveModels(ctx context.Context) (*ActiveModels, error) {
	out := &ActiveModels{}
	targets := []struct {
		modelType string
		dst       **string
	}{
		{model.ModelTypeConsultationSummary, &out.ConsultationSummaryModel},
		{model.ModelTypeConsultationValidation, &out.ConsultationValidationModel},
		{model.ModelTypeDischargeNoteSummary, &out.DischargeSummaryModel},
		{model.ModelTypeDischargeNoteValidation, &out.DischargeValidationModel},
		{model.ModelTypeAudioTranscription, &out.AudioModel},
	}
	for _, target := range targets {
		m, err := s.models.GetActiveByType(ctx, target.modelType)
		if errors.Is(err, appErr.ErrModelInactive) {
			continue
		}
		if err != nil {
			return nil, err
		}
		name := m.ModelName
		*target.dst = &name
	}
	return out, nil
}

func (s *ModelService) UpdateActiveModels(ctx context.Context, update ActiveModelsUpdate) error {
	assignments := []struct {
		name      string
		modelType string
	}{
		{update.ConsultationSummaryModel, model.ModelTypeConsultationSummary},
		{update.ConsultationValidationModel, model.ModelTypeConsultationValidation},
		{update.DischargeSummaryModel, model.ModelTypeDischargeNoteSummary},
		{update.DischargeValidationModel, model.ModelTypeDischargeNoteValidation},
		{update.AudioModel, model.ModelTypeAudioTranscription},
	}
	for _, a := range assignments {
		if a.name == "" {
			continue
		}
		desc := fmt.Sprintf("Auto-added %s model: %s", a.modelType, a.name)
		if err := s.models.EnsureExists(ctx, a.name, a.modelType, desc); err != nil {
			return err
		}
		if err := s.models.ActivateExclusive(ctx, a.name, a.modelType); err != nil {
			return err
		}
		s.cache.Remove(a.modelType)
	}
	return nil
}
