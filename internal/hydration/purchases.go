package hydration

import (
	"fmt"

	"github.com/nexuite/sync-backend/internal/models"
	"github.com/nexuite/sync-backend/pkg/logger"
	"github.com/nexuite/sync-backend/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// processPurchase hydrates one REGISTRAR_COMPRA payload. The payload
// carries an "args" pair of [header, items]; older client builds emit
// incomplete shapes, which are tolerated as no-ops rather than errors.
//
// Before inserting items the referenced trip is repaired: if the
// client points at a trip id this store has never seen, a ghost
// placeholder is inserted under that same id so the line items keep
// the foreign key the client believes in.
func processPurchase(tx *gorm.DB, payload map[string]interface{}) {
	args, ok := payload["args"].([]interface{})
	if !ok || len(args) < 2 {
		return
	}
	header, ok := args[0].(map[string]interface{})
	if !ok {
		logger.Warn("hydration_purchase_malformed_header", map[string]interface{}{
			"folio": payload["folio"],
		})
		return
	}
	items, ok := args[1].([]interface{})
	if !ok {
		return
	}

	tripID := utils.SafeInt(header["viaje_id"], 0)
	if tripID > 0 {
		ensureTrip(tx, tripID)
	}

	fallbackFolio := stringValue(payload["folio"], "")
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			logger.Warn("hydration_purchase_item_skipped", map[string]interface{}{
				"reason": fmt.Sprintf("item is %T, not an object", raw),
			})
			continue
		}
		insertItem(tx, header, item, tripID, fallbackFolio)
	}
}

// ensureTrip inserts a ghost trip under the client-supplied id if none
// exists. ON CONFLICT DO NOTHING makes the repair race-safe: when two
// requests carry purchases for the same unseen trip, one placeholder
// wins and the other insert is a silent no-op.
func ensureTrip(tx *gorm.DB, id int) {
	ghost := models.Trip{
		ID:     id,
		Name:   fmt.Sprintf("Ref-Sync-%d", id),
		Active: true,
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ghost)
	if result.Error != nil {
		logger.Error("hydration_ghost_trip_failed", result.Error, map[string]interface{}{
			"trip_id": id,
		})
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("hydration_ghost_trip_created", map[string]interface{}{
			"trip_id": id,
		})
	}
}

func insertItem(tx *gorm.DB, header, item map[string]interface{}, tripID int, fallbackFolio string) {
	var itemUUID *string
	if s, ok := item["uuid"].(string); ok && s != "" {
		var count int64
		if err := tx.Model(&models.Purchase{}).Where("uuid = ?", s).Count(&count).Error; err != nil {
			logger.Error("hydration_purchase_lookup_failed", err, map[string]interface{}{
				"uuid": s,
			})
			return
		}
		if count > 0 {
			// Already hydrated from an earlier event.
			return
		}
		itemUUID = &s
	}

	purchase := models.Purchase{
		UUID:                itemUUID,
		Product:             stringValue(item["producto"], "Unknown"),
		SalePrice:           utils.SafeFloat(item["precio_venta"], 0),
		Quantity:            utils.SafeFloat(item["cantidad"], 0),
		UnitCostMXN:         utils.SafeFloat(item["costo_mxn"], 0),
		RateMXNUSD:          rateValue(item, "tasa_mxn_snap"),
		RateCUCUSD:          rateValue(item, "tasa_cuc_snap"),
		Settled:             flagValue(header, "liquidado_global", true),
		AmountPaid:          0, // settlement is reconciled elsewhere; hydration only records the purchase
		Category:            stringValue(item["categoria"], "PRODUCTO"),
		UnitOfMeasure:       stringValue(item["unidad"], "uds"),
		UnitCostCUCSnapshot: utils.SafeFloat(item["costo_cuc_visual"], 0),
		IsInvestment:        flagValue(header, "es_inversion", false),
		Folio:               folioValue(item, fallbackFolio),
	}
	if tripID > 0 {
		purchase.TripID = &tripID
	}

	if err := tx.Create(&purchase).Error; err != nil {
		logger.Error("hydration_purchase_insert_failed", err, map[string]interface{}{
			"product": purchase.Product,
			"folio":   purchase.Folio,
		})
	}
}

func stringValue(v interface{}, fallback string) string {
	switch s := v.(type) {
	case nil:
		return fallback
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

// rateValue reads an exchange-rate snapshot: 1 when the client never
// sent the field, the usual zero fallback when it sent garbage.
func rateValue(item map[string]interface{}, key string) float64 {
	v, ok := item[key]
	if !ok {
		return 1
	}
	return utils.SafeFloat(v, 0)
}

func flagValue(m map[string]interface{}, key string, absent bool) bool {
	v, ok := m[key]
	if !ok {
		return absent
	}
	return utils.Truthy(v)
}

// folioValue prefers the item's own folio and falls back to the
// payload-level one when the item's is missing or blank.
func folioValue(item map[string]interface{}, fallback string) string {
	if v, ok := item["folio"]; ok && utils.Truthy(v) {
		return stringValue(v, fallback)
	}
	return fallback
}
