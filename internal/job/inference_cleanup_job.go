package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/pkg/logutil"
	"github.com/privnurse/privnurse/internal/repo"
)

// InferenceCleanupJob prunes inference rows the nurse never confirmed.
type InferenceCleanupJob struct {
	inferences *repo.InferenceRepo
	keepFor    time.Duration
}

func NewInferenceCleanupJob(inferences *repo.InferenceRepo, keepFor time.Duration) *InferenceCleanupJob {
	return &InferenceCleanupJob{inferences: inferences, keepFor: keepFor}
}

func (j *InferenceCleanupJob) Name() string {
	return "inference_cleanup"
}

func (j *InferenceCleanupJob) Run(ctx context.Context) error {
	if j.inferences == nil {
		return nil
	}
	keepFor := j.keepFor
	if keepFor <= 0 {
		keepFor = 30 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-keepFor)
	deleted, err := j.inferences.DeleteUnconfirmedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("stale inferences pruned", zap.Int64("deleted", deleted))
	}
	return nil
}
