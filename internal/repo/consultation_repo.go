package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
)

type ConsultationRepo struct {
	db *sqlx.DB
}

func NewConsultationRepo(db *sqlx.DB) *ConsultationRepo {
	return &ConsultationRepo{db: db}
}

func (r *ConsultationRepo) Create(ctx context.Context, c *model.ConsultationRecord) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO consultation_records (patient_id, doctor_name, consultation_date, department,
		    consultation_type, original_content, ai_summary, nurse_confirmation, relevant_highlights,
		    status, created_by, confirmed_by, confirmed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`,
		c.PatientID, c.DoctorName, c.ConsultationDate, c.Department, c.ConsultationType,
		c.OriginalContent, c.AISummary, c.NurseConfirmation, nullableJSON(c.RelevantHighlights),
		c.Status, c.CreatedBy, c.ConfirmedBy, c.ConfirmedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ConsultationRepo) GetByID(ctx context.Context, id int64) (*model.ConsultationRecord, error) {
	var c model.ConsultationRecord
	err := r.db.GetContext(ctx, &c, `SELECT * FROM consultation_records WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type ConsultationFilter struct {
	PatientID  int64
	Department string
	Status     string
	Page       int
	Limit      int
}

func (r *ConsultationRepo) List(ctx context.Context, filter ConsultationFilter) ([]model.ConsultationRecord, int64, error) {
	where := map[string]interface{}{}
	if filter.PatientID > 0 {
		where["patient_id"] = filter.PatientID
	}
	if filter.Department != "" {
		where["department"] = filter.Department
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}

	countSQL, countArgs, err := builder.BuildSelect("consultation_records", where, []string{"count(*)"})
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countSQL), countArgs...); err != nil {
		return nil, 0, err
	}

	where["_orderby"] = "consultation_date desc, id desc"
	sqlStr, args, err := builder.BuildSelect("consultation_records", where, nil)
	if err != nil {
		return nil, 0, err
	}
	sqlStr, args = paginate(sqlStr, args, filter.Page, filter.Limit)
	var records []model.ConsultationRecord
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(sqlStr), args...); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindDuplicate looks for an existing record that matches on every supplied
// content field. Used to reject exact re-submissions.
func (r *ConsultationRepo) FindDuplicate(ctx context.Context, match map[string]interface{}) (bool, error) {
	sqlStr, args, err := builder.BuildSelect("consultation_records", match, []string{"count(*)"})
	if err != nil {
		return false, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(sqlStr), args...); err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *ConsultationRepo) Update(ctx context.Context, id int64, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("consultation_records", map[string]interface{}{"id": id}, update)
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

func (r *ConsultationRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM consultation_records WHERE id = $1`, id)
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

// nullableJSON maps an absent JSON payload onto a SQL NULL instead of an
// empty byte slice, which jsonb rejects.
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
