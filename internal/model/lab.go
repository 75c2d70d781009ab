package model

import "time"

const (
	LabFlagHigh     = "HIGH"
	LabFlagLow      = "LOW"
	LabFlagCritical = "CRITICAL"
	LabFlagNormal   = "NORMAL"
)

type LabReport struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	TestName      string    `db:"test_name" json:"test_name"`
	TestDate      time.Time `db:"test_date" json:"test_date"`
	ResultValue   string    `db:"result_value" json:"result_value"`
	ResultUnit    *string   `db:"result_unit" json:"result_unit"`
	NormalRange   *string   `db:"normal_range" json:"normal_range"`
	Flag          string    `db:"flag" json:"flag"`
	LabTechnician *string   `db:"lab_technician" json:"lab_technician"`
	OrderedBy     *int64    `db:"ordered_by" json:"ordered_by"`
}
