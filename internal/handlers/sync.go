package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nexuite/sync-backend/internal/hydration"
	"github.com/nexuite/sync-backend/internal/models"
	"github.com/nexuite/sync-backend/pkg/logger"
	"github.com/nexuite/sync-backend/pkg/utils"
	"gorm.io/gorm"
)

// clientTimeLayout is the client-local wall-clock format events carry.
const clientTimeLayout = "2006-01-02 15:04:05"

// SyncEvent is the wire shape of one pushed audit event. It is
// transient: what gets persisted is the decoded AuditRecord.
type SyncEvent struct {
	Timestamp     string `json:"timestamp"`
	ActionType    string `json:"action_type"`
	PayloadJSON   string `json:"payload_json"`
	User          string `json:"user"`
	AppVersion    string `json:"app_version"`
	Hash          string `json:"hash"`
	GlobalEventID string `json:"global_event_id"`
}

type SyncHandler struct {
	DB *gorm.DB
}

func NewSyncHandler(db *gorm.DB) *SyncHandler {
	return &SyncHandler{DB: db}
}

// Push ingests a batch of audit events inside one transaction. Per
// event: skip if the global_event_id was seen before, otherwise insert
// the audit record and hydrate the operational tables from its
// payload. Hydration failures never fail the batch; a commit failure
// rolls the whole batch back.
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	var events []SyncEvent
	if err := c.BodyParser(&events); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "request body must be a JSON array of events")
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		logger.Error("sync_begin_failed", tx.Error, nil)
		return utils.Error(c, fiber.StatusInternalServerError, tx.Error.Error())
	}

	inserted := 0
	for _, ev := range events {
		var count int64
		if err := tx.Model(&models.AuditRecord{}).
			Where("global_event_id = ?", ev.GlobalEventID).
			Count(&count).Error; err != nil {
			tx.Rollback()
			logger.Error("sync_dedup_query_failed", err, map[string]interface{}{
				"global_event_id": ev.GlobalEventID,
			})
			return utils.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			// Already synced; audit insert and hydration both skip.
			continue
		}

		payload := decodePayload(ev.GlobalEventID, ev.PayloadJSON)
		record := models.AuditRecord{
			Timestamp:     parseClientTime(ev.Timestamp),
			ActionType:    ev.ActionType,
			Payload:       payload,
			User:          ev.User,
			AppVersion:    ev.AppVersion,
			Hash:          ev.Hash,
			GlobalEventID: ev.GlobalEventID,
			SyncStatus:    1,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			logger.Error("sync_audit_insert_failed", err, map[string]interface{}{
				"global_event_id": ev.GlobalEventID,
				"action_type":     ev.ActionType,
			})
			return utils.Error(c, fiber.StatusInternalServerError, err.Error())
		}

		hydration.Dispatch(tx, ev.ActionType, payload)
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		logger.Error("sync_commit_failed", err, map[string]interface{}{
			"batch_size": len(events),
		})
		return utils.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	logger.Info("sync_batch_committed", map[string]interface{}{
		"received": len(events),
		"inserted": inserted,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"inserted": inserted,
	})
}

// decodePayload parses the client-encoded payload string. Malformed
// payloads are replaced with an error marker: the audit record must
// persist either way, and the raw string is never stored.
func decodePayload(globalEventID, raw string) map[string]interface{} {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload == nil {
		logger.Warn("sync_payload_decode_failed", map[string]interface{}{
			"global_event_id": globalEventID,
		})
		return map[string]interface{}{"_decode_error": true}
	}
	return payload
}

func parseClientTime(raw string) time.Time {
	ts, err := time.Parse(clientTimeLayout, raw)
	if err != nil {
		return time.Now().UTC()
	}
	return ts
}
