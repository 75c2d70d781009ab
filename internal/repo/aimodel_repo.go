package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
)

type AIModelRepo struct {
	db *sqlx.DB
}

func NewAIModelRepo(db *sqlx.DB) *AIModelRepo {
	return &AIModelRepo{db: db}
}

func (r *AIModelRepo) GetActiveByType(ctx context.Context, modelType string) (*model.AIModel, error) {
	var m model.AIModel
	err := r.db.GetContext(ctx, &m,
		`SELECT * FROM ai_models WHERE model_type = $1 AND is_active = TRUE ORDER BY id LIMIT 1`, modelType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrModelInactive
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *AIModelRepo) GetByName(ctx context.Context, name string) (*model.AIModel, error) {
	var m model.AIModel
	err := r.db.GetContext(ctx, &m, `SELECT * FROM ai_models WHERE model_name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *AIModelRepo) List(ctx context.Context) ([]model.AIModel, error) {
	var models []model.AIModel
	err := r.db.SelectContext(ctx, &models, `SELECT * FROM ai_models ORDER BY model_type, model_name`)
	return models, err
}

// EnsureExists registers an unknown model name as inactive so activation can
// reference it.
func (r *AIModelRepo) EnsureExists(ctx context.Context, name, modelType, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_models (model_name, model_type, description, is_active)
		 VALUES ($1, $2, $3, FALSE)
		 ON CONFLICT (model_name) DO NOTHING`,
		name, modelType, description)
	return err
}

// ActivateExclusive marks the named model active for its type and
// deactivates every other model of that type, in one transaction.
func (r *AIModelRepo) ActivateExclusive(ctx context.Context, name, modelType string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		`UPDATE ai_models SET is_active = FALSE, updated_at = $1 WHERE model_type = $2`,
		time.Now(), modelType); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE ai_models SET is_active = TRUE, updated_at = $1 WHERE model_name = $2 AND model_type = $3`,
		time.Now(), name, modelType)
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
	return tx.Commit()
}
