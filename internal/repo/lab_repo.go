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

type LabRepo struct {
	db *sqlx.DB
}

func NewLabRepo(db *sqlx.DB) *LabRepo {
	return &LabRepo{db: db}
}

func (r *LabRepo) Create(ctx context.Context, report *model.LabReport) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO lab_reports (patient_id, test_name, test_date, result_value, result_unit,
		    normal_range, flag, lab_technician, ordered_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		report.PatientID, report.TestName, report.TestDate, report.ResultValue, report.ResultUnit,
		report.NormalRange, report.Flag, report.LabTechnician, report.OrderedBy,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *LabRepo) GetByID(ctx context.Context, id int64) (*model.LabReport, error) {
	var report model.LabReport
	err := r.db.GetContext(ctx, &report, `SELECT * FROM lab_reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

type LabFilter struct {
	PatientID int64
	Flag      string
	Page      int
	Limit     int
}

func (r *LabRepo) List(ctx context.Context, filter LabFilter) ([]model.LabReport, int64, error) {
	where := map[string]interface{}{}
	if filter.PatientID > 0 {
		where["patient_id"] = filter.PatientID
	}
	if filter.Flag != "" {
		where["flag"] = filter.Flag
	}

	countSQL, countArgs, err := builder.BuildSelect("lab_reports", where, []string{"count(*)"})
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countSQL), countArgs...); err != nil {
		return nil, 0, err
	}

	where["_orderby"] = "test_date desc, id desc"
	sqlStr, args, err := builder.BuildSelect("lab_reports", where, nil)
	if err != nil {
		return nil, 0, err
	}
	sqlStr, args = paginate(sqlStr, args, filter.Page, filter.Limit)
	var reports []model.LabReport
	if err := r.db.SelectContext(ctx, &reports, r.db.Rebind(sqlStr), args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *LabRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lab_reports WHERE id = $1`, id)
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
