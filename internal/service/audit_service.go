package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/privnurse/privnurse/internal/model"
	"github.com/privnurse/privnurse/internal/pkg/logutil"
	"github.com/privnurse/privnurse/internal/repo"
)

// AuditService writes the audit trail. Append failures are logged, never
// surfaced; an audit miss must not fail the operation it records.
type AuditService struct {
	audits *repo.AuditRepo
}

func NewAuditService(audits *repo.AuditRepo) *AuditService {
	return &AuditService{audits: audits}
}

func (s *AuditService) Record(ctx context.Context, userID int64, action, tableName string, recordID int64, detail interface{}, ip string) {
	entry := &model.AuditLog{Action: action}
	if userID > 0 {
		entry.UserID = &userID
	}
	if tableName != "" {
		entry.TableName = &tableName
	}
	if recordID > 0 {
		entry.RecordID = &recordID
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err == nil {
			entry.Detail = raw
		}
	}
	if err := s.audits.Append(ctx, entry); err != nil {
		logutil.GetLogger(ctx).Error("audit append failed",
			zap.String("action", action), zap.Error(err))
	}
}
