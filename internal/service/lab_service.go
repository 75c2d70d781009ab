package service

import (
	"context"
	"fmt"
	"time"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
)

type CreateLabReportRequest struct {
	PatientID     int64      `json:"patient_id" binding:"required"`
	TestName      string     `json:"test_name" binding:"required"`
	TestDate      *time.Time `json:"test_date"`
	ResultValue   string     `json:"result_value" binding:"required"`
	ResultUnit    *string    `json:"result_unit"`
	NormalRange   *string    `json:"normal_range"`
	Flag          string     `json:"flag"`
	LabTechnician *string    `json:"lab_technician"`
}

type LabService struct {
	reports  *repo.LabRepo
	patients *repo.PatientRepo
}

func NewLabService(reports *repo.LabRepo, patients *repo.PatientRepo) *LabService {
	return &LabService{reports: reports, patients: patients}
}

func (s *LabService) Create(ctx context.Context, userID int64, req CreateLabReportRequest) (*model.LabReport, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if req.Flag == "" {
		req.Flag = model.LabFlagNormal
	}
	switch req.Flag {
	case model.LabFlagHigh, model.LabFlagLow, model.LabFlagCritical, model.LabFlagNormal:
	default:
		return nil, fmt.Errorf("%w: unknown flag %q", appErr.ErrInvalid, req.Flag)
	}
	testDate := time.Now()
	if req.TestDate != nil {
		testDate = *req.TestDate
	}
	report := &model.LabReport{
		PatientID:     req.PatientID,
		TestName:      req.TestName,
		TestDate:      testDate,
		ResultValue:   req.ResultValue,
		ResultUnit:    req.ResultUnit,
		NormalRange:   req.NormalRange,
		Flag:          req.Flag,
		LabTechnician: req.LabTechnician,
		OrderedBy:     &userID,
	}
	id, err := s.reports.Create(ctx, report)
	if err != nil {
		return nil, err
	}
	return s.reports.GetByID(ctx, id)
}

func (s *LabService) Get(ctx context.Context, id int64) (*model.LabReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *LabService) List(ctx context.Context, filter repo.LabFilter) ([]model.LabReport, int64, error) {
	return s.reports.List(ctx, filter)
}

func (s *LabService) Delete(ctx context.Context, id int64) error {
	return s.reports.Delete(ctx, id)
}
