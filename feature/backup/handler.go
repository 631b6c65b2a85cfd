package backup

import (
	"bg3-modsettings/core/logger"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for profile backups.
type Handler struct {
	service  *Service
	profiles models.Profiles
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, profiles models.Profiles) *Handler {
	return &Handler{service: service, profiles: profiles}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backup")
	group.Get("/:profile", h.HandleList)
	group.Post("/:profile/push", h.HandlePush)
	group.Post("/:profile/pull", h.HandlePull)
	group.Delete("/:profile", h.HandleDelete)
}

// HandlePush uploads a profile's files.
// @Summary Push Profile Backup
// @Description Uploads modsettings.lsx and modsCache.json of the profile to the backup bucket.
// @Tags backup
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Unknown profile"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup/{profile}/push [post]
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	profile := c.Params("profile")

	dir, err := h.profiles.Dir(profile)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Push(c.Context(), profile, dir)
	if err != nil {
		l.Error("Backup push failed", zap.String("profile", profile), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandlePull restores a profile's files.
// @Summary Pull Profile Backup
// @Description Downloads the stored files of the profile, replacing local copies.
// @Tags backup
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Unknown profile"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup/{profile}/pull [post]
func (h *Handler) HandlePull(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	profile := c.Params("profile")

	dir, err := h.profiles.Dir(profile)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Pull(c.Context(), profile, dir)
	if err != nil {
		l.Error("Backup pull failed", zap.String("profile", profile), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleList lists a profile's stored files.
// @Summary List Profile Backup
// @Tags backup
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {array} Object
// @Router /backup/{profile} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	profile := c.Params("profile")
	if _, err := h.profiles.Path(profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	objects, err := h.service.List(c.Context(), profile)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"profile": profile, "objects": objects})
}

// HandleDelete removes a profile's stored files.
// @Summary Delete Profile Backup
// @Tags backup
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} map[string]interface{}
// @Router /backup/{profile} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	profile := c.Params("profile")
	if _, err := h.profiles.Path(profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	deleted, err := h.service.Delete(c.Context(), profile)
	if err != nil {
		l.Error("Backup delete failed", zap.String("profile", profile), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"profile": profile, "deleted": deleted})
}
