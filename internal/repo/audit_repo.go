package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/privnurse/privnurse/internal/model"
)

type AuditRepo struct {
	db *sqlx.DB
}

func NewAuditRepo(db *sqlx.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, entry *model.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (user_id, action, table_name, record_id, detail, ip_address)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UserID, entry.Action, entry.TableName, entry.RecordID,
		nullableJSON(entry.Detail), entry.IPAddress)
	return err
}

func (r *AuditRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
