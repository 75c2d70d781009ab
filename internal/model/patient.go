package model

import "time"

const (
	PatientStatusHospitalized = "HOSPITALIZED"
	PatientStatusDischarged   = "DISCHARGED"
	PatientStatusTransferred  = "TRANSFERRED"
)

type Patient struct {
	ID                    int64      `db:"id" json:"id"`
	MedicalRecordNo       string     `db:"medical_record_no" json:"medical_record_no"`
	PatientCategory       string     `db:"patient_category" json:"patient_category"`
	Name                  string     `db:"name" json:"name"`
	Gender                string     `db:"gender" json:"gender"`
	Weight                *float64   `db:"weight" json:"weight"`
	Department            string     `db:"department" json:"department"`
	Birthday              time.Time  `db:"birthday" json:"birthday"`
	AdmissionTime         *time.Time `db:"admission_time" json:"admission_time"`
	DischargeTime         *time.Time `db:"discharge_time" json:"discharge_time"`
	BedNumber             *string    `db:"bed_number" json:"bed_number"`
	Status                string     `db:"status" json:"status"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergency_contact_phone"`
	InsuranceNumber       *string    `db:"insurance_number" json:"insurance_number"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy             *int64     `db:"created_by" json:"created_by"`
}

// PatientHistory is one field-level change recorded on patient update.
type PatientHistory struct {
	ID        int64     `db:"id" json:"id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	FieldName string    `db:"field_name" json:"field_name"`
	OldValue  *string   `db:"old_value" json:"old_value"`
	NewValue  *string   `db:"new_value" json:"new_value"`
	ChangedBy int64     `db:"changed_by" json:"changed_by"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}
