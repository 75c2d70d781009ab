package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
)

type PatientRepo struct {
	db *sqlx.DB
}

func NewPatientRepo(db *sqlx.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p *model.Patient) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO patients (medical_record_no, patient_category, name, gender, weight, department,
		    birthday, admission_time, bed_number, status, emergency_contact_name, emergency_contact_phone,
		    insurance_number, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`,
		p.MedicalRecordNo, p.PatientCategory, p.Name, p.Gender, p.Weight, p.Department,
		p.Birthday, p.AdmissionTime, p.BedNumber, p.Status, p.EmergencyContactName,
		p.EmergencyContactPhone, p.InsuranceNumber, p.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	var p model.Patient
	err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) GetByMedicalRecordNo(ctx context.Context, mrn string) (*model.Patient, error) {
	var p model.Patient
	err := r.db.GetContext(ctx, &p, `SELECT * FROM patients WHERE medical_record_no = $1`, mrn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type PatientFilter struct {
	Department string
	Status     string
	Page       int
	Limit      int
}

func (r *PatientRepo) List(ctx context.Context, filter PatientFilter) ([]model.Patient, int64, error) {
	where := map[string]interface{}{}
	if filter.Department != "" {
		where["department"] = filter.Department
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}

	total, err := r.count(ctx, "patients", where)
	if err != nil {
		return nil, 0, err
	}

	where["_orderby"] = "admission_time desc nulls last, id desc"
	sqlStr, args, err := builder.BuildSelect("patients", where, nil)
	if err != nil {
		return nil, 0, err
	}
	sqlStr, args = paginate(sqlStr, args, filter.Page, filter.Limit)
	var patients []model.Patient
	if err := r.db.SelectContext(ctx, &patients, r.db.Rebind(sqlStr), args...); err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int64, update map[string]interface{}) error {
	update["updated_at"] = time.Now()
	sqlStr, args, err := builder.BuildUpdate("patients", map[string]interface{}{"id": id}, update)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(sqlStr), args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *PatientRepo) count(ctx context.Context, table string, where map[string]interface{}) (int64, error) {
	cond := map[string]interface{}{}
	for k, v := range where {
		cond[k] = v
	}
	sqlStr, args, err := builder.BuildSelect(table, cond, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(sqlStr), args...); err != nil {
		return 0, err
	}
	return total, nil
}

type PatientHistoryRepo struct {
	db *sqlx.DB
}

func NewPatientHistoryRepo(db *sqlx.DB) *PatientHistoryRepo {
	return &PatientHistoryRepo{db: db}
}

func (r *PatientHistoryRepo) Append(ctx context.Context, entries []model.PatientHistory) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]interface{}{
			"patient_id": e.PatientID,
			"field_name": e.FieldName,
			"old_value":  e.OldValue,
			"new_value":  e.NewValue,
			"changed_by": e.ChangedBy,
		})
	}
	sqlStr, args, err := builder.BuildInsert("patient_history", rows)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(sqlStr), args...)
	return err
}

func (r *PatientHistoryRepo) ListByPatient(ctx context.Context, patientID int64) ([]model.PatientHistory, error) {
	var entries []model.PatientHistory
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM patient_history WHERE patient_id = $1 ORDER BY changed_at DESC, id DESC`, patientID)
	return entries, err
}
