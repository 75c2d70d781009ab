package model

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID        int64           `db:"id" json:"id"`
	UserID    *int64          `db:"user_id" json:"user_id"`
	Action    string          `db:"action" json:"action"`
	TableName *string         `db:"table_name" json:"table_name"`
	RecordID  *int64          `db:"record_id" json:"record_id"`
	Detail    json.RawMessage `db:"detail" json:"detail"`
	IPAddress *string         `db:"ip_address" json:"ip_address"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
