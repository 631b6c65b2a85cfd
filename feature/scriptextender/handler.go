package scriptextender

import (
	"bg3-modsettings/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the finished-run callback.
type Handler struct {
	relocator *Relocator
}

// NewHandler creates a new HTTP handler.
func NewHandler(relocator *Relocator) *Handler {
	return &Handler{relocator: relocator}
}

// RegisterRoutes registers the Script Extender routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/scriptextender/relocate", h.HandleRelocate)
}

// HandleRelocate moves Script Extender output into the overwrite folder.
// @Summary Relocate Script Extender Files
// @Description Called after the game exits. Moves the Script Extender directory content into overwrite/SE_CONFIG.
// @Tags scriptextender
// @Produce json
// @Success 200 {object} RelocationReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scriptextender/relocate [post]
func (h *Handler) HandleRelocate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.relocator.logger, c)

	report, err := h.relocator.Relocate()
	if err != nil {
		l.Error("Script Extender relocation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
