package vfs

import (
	"bytes"

	"bg3-modsettings/core/logger"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves mapping requests.
type Handler struct {
	mapper   *Mapper
	profiles models.Profiles
}

// NewHandler creates a new HTTP handler.
func NewHandler(mapper *Mapper, profiles models.Profiles) *Handler {
	return &Handler{mapper: mapper, profiles: profiles}
}

// RegisterRoutes registers the vfs routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/vfs/:profile/mappings", h.HandleMappings)
}

// HandleMappings computes the mappings for the posted roster.
// @Summary Compute VFS Mappings
// @Description Returns the source/destination pairs of every enabled mod plus the profile load order.
// @Tags vfs
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {array} Mapping
// @Failure 400 {object} map[string]string "Invalid roster"
// @Failure 404 {object} map[string]string "Unknown profile"
// @Router /vfs/{profile}/mappings [post]
func (h *Handler) HandleMappings(c *fiber.Ctx) error {
	l := logger.WithRayID(h.mapper.logger, c)

	dir, err := h.profiles.Dir(c.Params("profile"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	mods, err := models.DecodeModList(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.mapper.EnsureTargets(); err != nil {
		l.Warn("Failed to create mapping targets", zap.Error(err))
	}

	mappings, err := h.mapper.Mappings(mods, dir)
	if err != nil {
		l.Error("Mapping computation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(mappings)
}
