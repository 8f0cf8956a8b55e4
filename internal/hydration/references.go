package hydration

import (
	"github.com/nexuite/sync-backend/internal/models"
	"github.com/nexuite/sync-backend/pkg/logger"
	"github.com/nexuite/sync-backend/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// processReferenceCreation creates a trip under the client-supplied
// id. The insert is an upsert that backs off on conflict, so a
// concurrent create (or an earlier ghost placeholder) wins quietly.
func processReferenceCreation(tx *gorm.DB, payload map[string]interface{}) {
	id := utils.SafeInt(payload["id"], 0)
	name, _ := payload["nombre"].(string)
	weight := utils.SafeFloat(payload["peso"], 0)

	if id <= 0 || name == "" {
		return
	}

	trip := models.Trip{
		ID:       id,
		Name:     name,
		WeightKG: weight,
		Active:   true,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&trip)
	if result.Error != nil {
		logger.Error("hydration_reference_insert_failed", result.Error, map[string]interface{}{
			"trip_id": id,
			"name":    name,
		})
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("hydration_reference_created", map[string]interface{}{
			"trip_id": id,
			"name":    name,
		})
	}
}
