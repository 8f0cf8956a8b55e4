package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nexuite/sync-backend/internal/models"
	"github.com/nexuite/sync-backend/pkg/logger"
	"gorm.io/gorm"
)

// ObjectStore is the slice of the storage client the exporter needs.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// Exporter periodically ships new system_audit rows to object storage
// as NDJSON so downstream analytics never query the OLTP store. It is
// cursor-based and idempotent per row: each run exports rows with an
// id past the persisted cursor and advances it on success.
type Exporter struct {
	DB    *gorm.DB
	Store ObjectStore
}

func NewExporter(db *gorm.DB, store ObjectStore) *Exporter {
	return &Exporter{DB: db, Store: store}
}

// Start launches the background export loop. A run that fails is
// simply retried on the next tick; the cursor only moves after a
// successful upload.
func (e *Exporter) Start(interval time.Duration) {
	if e.Store == nil {
		logger.Info("audit_exporter_disabled", map[string]interface{}{
			"reason": "no storage client configured",
		})
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := e.ExportOnce(context.Background()); err != nil {
				logger.Error("audit_export_run_failed", err, nil)
			}
		}
	}()

	logger.Info("audit_exporter_started", map[string]interface{}{
		"interval": interval.String(),
	})
}

// ExportOnce exports every audit row past the cursor and returns how
// many were shipped.
func (e *Exporter) ExportOnce(ctx context.Context) (int, error) {
	var cursor models.AuditExportCursor
	if err := e.DB.First(&cursor).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return 0, err
		}
		cursor = models.AuditExportCursor{}
		if err := e.DB.Create(&cursor).Error; err != nil {
			return 0, err
		}
	}

	var records []models.AuditRecord
	if err := e.DB.Where("id > ?", cursor.LastExportedID).
		Order("id ASC").
		Limit(10000).
		Find(&records).Error; err != nil {
		return 0, err
	}

	if len(records) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	objectName := fmt.Sprintf("system-audit/%s/%s.ndjson",
		now.Format("2006/01/02"),
		now.Format("15-04-05"),
	)

	if err := e.Store.Upload(ctx, objectName, &buf, int64(buf.Len()), "application/x-ndjson"); err != nil {
		return 0, err
	}

	lastID := records[len(records)-1].ID
	if err := e.DB.Model(&cursor).Updates(map[string]interface{}{
		"last_exported_id": lastID,
		"last_export_at":   now,
		"exported_count":   gorm.Expr("exported_count + ?", len(records)),
	}).Error; err != nil {
		return 0, err
	}

	logger.Info("audit_export_success", map[string]interface{}{
		"object_name": objectName,
		"count":       len(records),
	})
	return len(records), nil
}
