package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/pkg/logutil"
	"github.com/privnurse/privnurse/internal/repo"
)

type AuditCleanupJob struct {
	audits  *repo.AuditRepo
	keepFor time.Duration
}

func NewAuditCleanupJob(audits *repo.AuditRepo, keepFor time.Duration) *AuditCleanupJob {
	return &AuditCleanupJob{audits: audits, keepFor: keepFor}
}

func (j *AuditCleanupJob) Name() string {
	return "audit_cleanup"
}

func (j *AuditCleanupJob) Run(ctx context.Context) error {
	if j.audits == nil {
		return nil
	}
	keepFor := j.keepFor
	if keepFor <= 0 {
		keepFor = 90 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-keepFor)
	deleted, err := j.audits.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("audit rows pruned", zap.Int64("deleted", deleted))
	}
	return nil
}
