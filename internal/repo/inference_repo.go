package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
)

type InferenceRepo struct {
	db *sqlx.DB
}

func NewInferenceRepo(db *sqlx.DB) *InferenceRepo {
	return &InferenceRepo{db: db}
}

func (r *InferenceRepo) Create(ctx context.Context, inf *model.AIInference) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ai_inferences (user_id, patient_id, inference_type, original_content,
		    ai_generated_result, nurse_confirmation, relevant_text, model_used, status, confirmed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		inf.UserID, inf.PatientID, inf.InferenceType, inf.OriginalContent,
		inf.AIGeneratedResult, inf.NurseConfirmation, nullableJSON(inf.RelevantText),
		inf.ModelUsed, inf.Status, inf.ConfirmedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *InferenceRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]model.AIInference, error) {
	if limit <= 0 {
		limit = 50
	}
	var inferences []model.AIInference
	err := r.db.SelectContext(ctx, &inferences,
		`SELECT * FROM ai_inferences WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, limit)
	return inferences, err
}

// DeleteUnconfirmedBefore removes stale pending/completed inferences the
// nurse never confirmed.
func (r *InferenceRepo) DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM ai_inferences WHERE status IN ('pending', 'completed') AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
