package integrity

import (
	"bg3-modsettings/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/tool", h.HandleToolCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/profile/:profile", h.HandleProfileCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the extraction tool, the scratch directory, the backup bucket and, with ?profile=, one profile.
// @Tags integrity
// @Produce json
// @Param profile query string false "Profile to check"
// @Success 200 {object} Report
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.Run(c.UserContext(), c.Query("profile"))
	return c.JSON(report)
}

// HandleToolCheck checks the extraction tool.
// @Summary Check Extraction Tool
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.Result
// @Router /integrity/tool [get]
func (h *Handler) HandleToolCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckTool())
}

// HandleBucketCheck checks and optionally creates the backup bucket.
// @Summary Check Backup Bucket
// @Description Checks that the backup bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create a missing bucket"
// @Success 200 {object} checks.Result
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	r := h.service.CheckBucket(c.UserContext(), fix)
	if !r.OK() {
		l.Warn("Bucket check failed", zap.String("error", r.Error), zap.Bool("fix", fix))
	}
	return c.JSON(r)
}

// HandleProfileCheck checks one profile.
// @Summary Check Profile
// @Tags integrity
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {array} checks.Result
// @Router /integrity/profile/{profile} [get]
func (h *Handler) HandleProfileCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckProfile(c.Params("profile")))
}
