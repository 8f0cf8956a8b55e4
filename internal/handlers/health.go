package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nexuite/sync-backend/pkg/logger"
	"gorm.io/gorm"
)

type HealthHandler struct {
	DB *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check reports store connectivity with a trivial round trip. It is
// unauthenticated and always answers 200; the db field carries the
// verdict.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "connected"

	var one int
	if err := h.DB.Raw("SELECT 1").Scan(&one).Error; err != nil {
		logger.Warn("health_db_check_failed", map[string]interface{}{
			"error": err.Error(),
		})
		dbStatus = "error"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "online",
		"db":     dbStatus,
	})
}
