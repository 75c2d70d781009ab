package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privnurse/privnurse/internal/model"
)

func TestDiffTrackedFields(t *testing.T) {
	bedA := "A-101"
	bedB := "B-202"
	before := &model.Patient{
		ID:              7,
		MedicalRecordNo: "MRN-1",
		Name:            "Chen",
		Department:      "Endocrinology",
		Status:          model.PatientStatusHospitalized,
		BedNumber:       &bedA,
	}
	after := &model.Patient{
		ID:              7,
		MedicalRecordNo: "MRN-1",
		Name:            "Chen",
		Department:      "Surgery",
		Status:          model.PatientStatusTransferred,
		BedNumber:       &bedB,
	}

	entries := diffTrackedFields(before, after, 42)
	require.Len(t, entries, 3)

	byField := map[string]model.PatientHistory{}
	for _, e := range entries {
		byField[e.FieldName] = e
		require.Equal(t, int64(7), e.PatientID)
		require.Equal(t, int64(42), e.ChangedBy)
	}
	require.Equal(t, "Endocrinology", *byField["department"].OldValue)
	require.Equal(t, "Surgery", *byField["department"].NewValue)
	require.Equal(t, "HOSPITALIZED", *byField["status"].OldValue)
	require.Equal(t, "A-101", *byField["bed_number"].OldValue)
	require.Equal(t, "B-202", *byField["bed_number"].NewValue)
}

func TestDiffTrackedFieldsNoChanges(t *testing.T) {
	p := &model.Patient{ID: 1, MedicalRecordNo: "MRN-1", Name: "Chen", Department: "ICU", Status: model.PatientStatusHospitalized}
	require.Empty(t, diffTrackedFields(p, p, 1))
}
