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

type DischargeRepo struct {
	db *sqlx.DB
}

func NewDischargeRepo(db *sqlx.DB) *DischargeRepo {
	return &DischargeRepo{db: db}
}

func (r *DischargeRepo) Create(ctx context.Context, n *model.DischargeNote) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO discharge_notes (patient_id, chief_complaint, diagnosis, treatment_course,
		    discharge_date, created_by, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		n.PatientID, n.ChiefComplaint, []byte(n.Diagnosis), n.TreatmentCourse,
		n.DischargeDate, n.CreatedBy, n.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *DischargeRepo) GetByID(ctx context.Context, id int64) (*model.DischargeNote, error) {
	var n model.DischargeNote
	err := r.db.GetContext(ctx, &n, `SELECT * FROM discharge_notes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

type DischargeFilter struct {
	PatientID int64
	Status    string
	Page      int
	Limit     int
}

func (r *DischargeRepo) List(ctx context.Context, filter DischargeFilter) ([]model.DischargeNote, int64, error) {
	where := map[string]interface{}{}
	if filter.PatientID > 0 {
		where["patient_id"] = filter.PatientID
	}
	if filter.Status != "" {
		where["status"] = filter.Status
	}

	countSQL, countArgs, err := builder.BuildSelect("discharge_notes", where, []string{"count(*)"})
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countSQL), countArgs...); err != nil {
		return nil, 0, err
	}

	where["_orderby"] = "discharge_date desc nulls last, id desc"
	sqlStr, args, err := builder.BuildSelect("discharge_notes", where, nil)
	if err != nil {
		return nil, 0, err
	}
	sqlStr, args = paginate(sqlStr, args, filter.Page, filter.Limit)
	var notes []model.DischargeNote
	if err := r.db.SelectContext(ctx, &notes, r.db.Rebind(sqlStr), args...); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *DischargeRepo) Update(ctx context.Context, id int64, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("discharge_notes", map[string]interface{}{"id": id}, update)
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

func (r *DischargeRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discharge_notes WHERE id = $1`, id)
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
