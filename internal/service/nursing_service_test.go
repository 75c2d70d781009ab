package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRecordType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Vital Signs", "VitalSign"},
		{"vital signs", "VitalSign"},
		{"VitalSigns", "VitalSign"},
		{"Assessment", "Objective"},
		{"Observation", "Objective"},
		{"Patient Education", "Intervention"},
		{"Medication Administration", "Intervention"},
		{"Procedure", "Intervention"},
		{"Treatment", "Intervention"},
		{"Care Plan", "Intervention"},
		{"Discharge Planning", "Intervention"},
		{"Patient Complaint", "Subjective"},
		{"Patient Response", "Evaluation"},
		{"Shift Report", "NarrativeNote"},
		{"Progress Note", "NarrativeNote"},
		{"General Note", "NarrativeNote"},
		{"Incident Report", "NarrativeNote"},
		{"Subjective", "Subjective"},
		{"NarrativeNote", "NarrativeNote"},
		{"  Objective  ", "Objective"},
	}
	for _, tc := range cases {
		got, err := NormalizeRecordType(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizeRecordTypeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "Diary", "soap note"} {
		_, err := NormalizeRecordType(in)
		require.Error(t, err, "input %q", in)
	}
}
