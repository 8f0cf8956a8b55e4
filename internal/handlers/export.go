package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nexuite/sync-backend/internal/services"
	"github.com/nexuite/sync-backend/pkg/utils"
)

type ExportHandler struct {
	Exporter *services.Exporter
}

func NewExportHandler(exporter *services.Exporter) *ExportHandler {
	return &ExportHandler{Exporter: exporter}
}

// Trigger forces an audit export run outside the normal schedule,
// used operationally to verify rows are shipping.
func (h *ExportHandler) Trigger(c *fiber.Ctx) error {
	if h.Exporter == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable, "export storage not configured")
	}

	exported, err := h.Exporter.ExportOnce(c.Context())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "export failed")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"exported": exported})
}
