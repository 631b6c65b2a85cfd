package modsettings

import (
	"bytes"
	"errors"

	"bg3-modsettings/core/logger"
	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/models"
	"bg3-modsettings/feature/modsettings/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the lifecycle callbacks over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the modsettings routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/modsettings/:profile")
	group.Post("/init", h.HandleInit)
	group.Post("/installed", h.HandleInstalled)
	group.Post("/removed", h.HandleRemoved)
	group.Post("/generate", h.HandleGenerate)
	group.Post("/prune", h.HandlePrune)
	group.Get("/cache", h.HandleCache)
}

type removedRequest struct {
	Name string `json:"name"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnknownProfile):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidModRef):
		return fiber.StatusBadRequest
	case errors.Is(err, cache.ErrCorruptCache):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.String("profile", c.Params("profile")), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// HandleInit creates the profile and its empty cache.
// @Summary Initialize Profile
// @Description Creates the profile directory and an empty modsCache.json when none exists.
// @Tags modsettings
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} map[string]bool "created"
// @Failure 404 {object} map[string]string "Invalid profile"
// @Router /modsettings/{profile}/init [post]
func (h *Handler) HandleInit(c *fiber.Ctx) error {
	created, err := h.service.ProfileCreated(c.Params("profile"))
	if err != nil {
		return h.fail(c, "Profile init failed", err)
	}
	return c.JSON(fiber.Map{"created": created})
}

// HandleInstalled caches the archives of a freshly installed mod.
// @Summary Mod Installed
// @Description Extracts the descriptors of the mod's archives into the profile cache.
// @Tags modsettings
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Param mod body models.ModRef true "Installed mod"
// @Success 200 {object} map[string]interface{} "Cached entries and failures"
// @Failure 400 {object} map[string]string "Invalid mod"
// @Failure 404 {object} map[string]string "Unknown profile"
// @Router /modsettings/{profile}/installed [post]
func (h *Handler) HandleInstalled(c *fiber.Ctx) error {
	var mod models.ModRef
	if err := c.BodyParser(&mod); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries, failures, err := h.service.ModInstalled(c.UserContext(), c.Params("profile"), mod)
	if err != nil {
		return h.fail(c, "Mod install callback failed", err)
	}
	return c.JSON(fiber.Map{"entries": entries, "failures": failures})
}

// HandleRemoved drops a removed mod from the profile cache.
// @Summary Mod Removed
// @Description Removes the mod from every cached archive and deletes archives left unreferenced.
// @Tags modsettings
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} map[string]interface{} "Deleted archives"
// @Failure 400 {object} map[string]string "Missing name"
// @Router /modsettings/{profile}/removed [post]
func (h *Handler) HandleRemoved(c *fiber.Ctx) error {
	var req removedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	deleted, err := h.service.ModRemoved(c.Params("profile"), req.Name)
	if err != nil {
		return h.fail(c, "Mod removal callback failed", err)
	}
	if deleted == nil {
		deleted = []string{}
	}
	return c.JSON(fiber.Map{"deleted_archives": deleted})
}

// HandleGenerate writes the profile's modsettings.lsx for the posted roster.
// @Summary Generate Load Order
// @Description Prunes the cache, resolves every roster mod and writes modsettings.lsx. Concurrent identical requests share one pass.
// @Tags modsettings
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} synth.Result
// @Failure 400 {object} map[string]string "Invalid roster"
// @Failure 409 {object} map[string]string "Corrupt cache"
// @Router /modsettings/{profile}/generate [post]
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	mods, err := models.DecodeModList(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.AboutToRun(c.UserContext(), c.Params("profile"), mods)
	if err != nil {
		return h.fail(c, "Load order generation failed", err)
	}
	return c.JSON(result)
}

// HandlePrune plans, and optionally applies, the removal of stale cache references.
// @Summary Prune Cache
// @Description Compares the cache with the posted roster. Mutations run only with confirm=true and without dry_run.
// @Tags modsettings
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Param dry_run query boolean false "Plan only"
// @Param confirm query boolean false "Confirm destructive actions"
// @Success 200 {object} map[string]interface{} "Plan and executed count"
// @Router /modsettings/{profile}/prune [post]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	mods, err := models.DecodeModList(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	opts := reconcile.ReconcileOptions{
		DryRun:    c.Query("dry_run") == "true",
		Confirmed: c.Query("confirm") == "true",
	}

	plan, executed, err := h.service.Prune(c.Params("profile"), mods, opts)
	if err != nil {
		return h.fail(c, "Cache prune failed", err)
	}
	return c.JSON(fiber.Map{"plan": plan, "executed": executed, "applied": opts.Executes()})
}

// HandleCache returns the profile's cache content.
// @Summary Show Cache
// @Tags modsettings
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} map[string]interface{} "Archive id to metadata"
// @Router /modsettings/{profile}/cache [get]
func (h *Handler) HandleCache(c *fiber.Ctx) error {
	content, err := h.service.Cache(c.Params("profile"))
	if err != nil {
		return h.fail(c, "Cache read failed", err)
	}
	return c.JSON(content)
}
