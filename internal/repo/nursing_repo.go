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

type NursingRepo struct {
	db *sqlx.DB
}

func NewNursingRepo(db *sqlx.DB) *NursingRepo {
	return &NursingRepo{db: db}
}

func (r *NursingRepo) Create(ctx context.Context, n *model.NursingNote) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO nursing_notes (patient_id, record_type, content, audio_file_path,
		    transcription_text, created_by, shift, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		n.PatientID, n.RecordType, n.Content, n.AudioFilePath,
		n.TranscriptionText, n.CreatedBy, n.Shift, n.Priority,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *NursingRepo) GetByID(ctx context.Context, id int64) (*model.NursingNote, error) {
	var n model.NursingNote
	err := r.db.GetContext(ctx, &n, `SELECT * FROM nursing_notes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

type NursingFilter struct {
	PatientID  int64
	RecordType string
	Shift      string
	Page       int
	Limit      int
}

func (r *NursingRepo) List(ctx context.Context, filter NursingFilter) ([]model.NursingNote, int64, error) {
	where := map[string]interface{}{}
	if filter.PatientID > 0 {
		where["patient_id"] = filter.PatientID
	}
	if filter.RecordType != "" {
		where["record_type"] = filter.RecordType
	}
	if filter.Shift != "" {
		where["shift"] = filter.Shift
	}

	countSQL, countArgs, err := builder.BuildSelect("nursing_notes", where, []string{"count(*)"})
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countSQL), countArgs...); err != nil {
		return nil, 0, err
	}

	where["_orderby"] = "record_time desc, id desc"
	sqlStr, args, err := builder.BuildSelect("nursing_notes", where, nil)
	if err != nil {
		return nil, 0, err
	}
	sqlStr, args = paginate(sqlStr, args, filter.Page, filter.Limit)
	var notes []model.NursingNote
	if err := r.db.SelectContext(ctx, &notes, r.db.Rebind(sqlStr), args...); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *NursingRepo) Update(ctx context.Context, id int64, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("nursing_notes", map[string]interface{}{"id": id}, update)
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

func (r *NursingRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM nursing_notes WHERE id = $1`, id)
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
