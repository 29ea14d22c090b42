package integrity

import (
	"content-sweeper/core/logger"

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
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/content", h.HandleContentCheck)
	group.Get("/output", h.HandleOutputCheck)
	if h.service.HasLedger() {
		group.Get("/ledger", h.HandleLedgerCheck)
	}
}

// HandleIntegrityCheck runs every check. It answers 503 when any check fails.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.RunAll(c.Context())
	if !report.Healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleBucketCheck checks the bucket.
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckBucket(c.Context())
	if err != nil {
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleContentCheck checks the content root.
func (h *Handler) HandleContentCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckContent(c.Context())
	if err != nil {
		l.Error("Content check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleOutputCheck checks the output directory.
func (h *Handler) HandleOutputCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckOutput()
	if err != nil {
		l.Error("Output check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleLedgerCheck checks the audit ledger schema.
func (h *Handler) HandleLedgerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting ledger schema check")

	report, err := h.service.CheckLedger()
	if err != nil {
		l.Error("Ledger schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
