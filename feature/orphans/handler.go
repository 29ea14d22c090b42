package orphans

import (
	"errors"
	"os"

	"content-sweeper/core/logger"
	"content-sweeper/core/manifest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the last scan's artifacts. It never deletes anything.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the orphans routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orphans")
	group.Get("/", h.HandleManifest)
	group.Get("/report", h.HandleReport)
	group.Get("/summary", h.HandleSummary)
	if h.service.HasHistory() {
		group.Get("/history", h.HandleHistory)
	}
}

// HandleManifest returns the manifest as written by the last scan.
func (h *Handler) HandleManifest(c *fiber.Ctx) error {
	m, err := h.service.Manifest()
	if err != nil {
		return h.manifestError(c, err)
	}
	return c.JSON(m)
}

// HandleSummary returns the manifest metadata only.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	m, err := h.service.Manifest()
	if err != nil {
		return h.manifestError(c, err)
	}
	return c.JSON(m.Metadata)
}

// HandleReport returns the narrative report as plain text.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := os.ReadFile(h.service.ReportPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no report found, run a scan first"})
		}
		l.Error("Failed to read report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(data)
}

// HandleHistory returns recent scan runs from the audit ledger.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.History(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		l.Error("Failed to load scan history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// manifestError maps a manifest read failure to a response.
func (h *Handler) manifestError(c *fiber.Ctx, err error) error {
	if errors.Is(err, manifest.ErrManifestMissing) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no manifest found, run a scan first"})
	}

	logger.WithRayID(h.service.logger, c).Error("Failed to read manifest", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
