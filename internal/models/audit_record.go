package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditRecord is the durable copy of one client-emitted audit event.
// It is append-only: rows are deduplicated by GlobalEventID at ingest
// time and never updated afterwards. The table and column names match
// the legacy desktop client's schema.
type AuditRecord struct {
	ID            uint                   `json:"id" gorm:"primaryKey"`
	Timestamp     time.Time              `json:"timestamp" gorm:"column:timestamp"`
	ActionType    string                 `json:"actionType" gorm:"column:action_type;type:varchar(100);index"`
	Payload       map[string]interface{} `json:"payload" gorm:"column:payload_json;serializer:json"`
	User          string                 `json:"user" gorm:"column:user;type:varchar(100)"`
	AppVersion    string                 `json:"appVersion" gorm:"column:app_version;type:varchar(50)"`
	Hash          string                 `json:"hash" gorm:"column:hash;type:varchar(128)"`
	GlobalEventID string                 `json:"globalEventID" gorm:"column:global_event_id;type:varchar(64);uniqueIndex;not null"`
	SyncStatus    int                    `json:"syncStatus" gorm:"column:sync_status;not null;default:1"`
}

func (a *AuditRecord) BeforeCreate(_ *gorm.DB) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

func (AuditRecord) TableName() string {
	return "system_audit"
}

// AuditExportCursor tracks the last successfully exported audit row so
// the periodic object-storage export only ships new ones. The cursor
// follows the autoincrement id, not the client timestamp — client
// clocks go backwards.
type AuditExportCursor struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	LastExportedID uint      `json:"lastExportedID" gorm:"not null;default:0"`
	LastExportAt   time.Time `json:"lastExportAt"`
	ExportedCount  int64     `json:"exportedCount" gorm:"not null;default:0"`
}

func (AuditExportCursor) TableName() string {
	return "audit_export_cursors"
}
