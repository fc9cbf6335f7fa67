package links

import (
	"errors"

	"travel-admin/core/logger"
	"travel-admin/core/reconcile"
	"travel-admin/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for links.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// LinksRequest is the body of create, update and preview requests.
type LinksRequest struct {
	ChildIDs *[]uint `json:"child_ids"`
}

// RegisterRoutes registers the link routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/links")
	group.Get("/", h.HandleListKinds)
	group.Get("/schema", h.HandleCheckSchema)
	group.Get("/:kind", h.HandleListLinks)
	group.Get("/:kind/:parent", h.HandleGetLinks)
	group.Get("/:kind/:parent/history", h.HandleHistory)
	group.Post("/:kind/:parent/preview", h.HandlePreview)
	group.Post("/:kind/:parent", h.HandleCreateLinks)
	group.Put("/:kind/:parent", h.HandleUpdateLinks)
	group.Delete("/:kind/:parent", h.HandleDeleteLinks)
}

// HandleListKinds returns every relationship kind.
// @Summary List relationship kinds
// @Tags links
// @Produce json
// @Success 200 {array} Relation
// @Router /links [get]
func (h *Handler) HandleListKinds(c *fiber.Ctx) error {
	return c.JSON(h.service.Kinds())
}

// HandleCheckSchema verifies the relation tables.
// @Summary Check relation tables
// @Description Reports the expected columns missing from every relation table.
// @Tags links
// @Produce json
// @Success 200 {array} SchemaStatus
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /links/schema [get]
func (h *Handler) HandleCheckSchema(c *fiber.Ctx) error {
	status, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(status)
}

// HandleListLinks returns the live links of every parent of a kind.
// @Summary List links
// @Tags links
// @Produce json
// @Param kind path string true "Relationship kind (e.g. 'hotel-amenity')"
// @Success 200 {array} ParentLinks
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /links/{kind} [get]
func (h *Handler) HandleListLinks(c *fiber.Ctx) error {
	links, err := h.service.ListGrouped(c.UserContext(), c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(links)
}

// HandleGetLinks returns the live child ids of one parent.
// @Summary Get links of a parent
// @Tags links
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Success 200 {object} ParentLinks
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /links/{kind}/{parent} [get]
func (h *Handler) HandleGetLinks(c *fiber.Ctx) error {
	parent, err := utils.ParseID(c.Params("parent"))
	if err != nil {
		return h.badRequest(c, err)
	}

	children, err := h.service.Get(c.UserContext(), c.Params("kind"), parent)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"parent_id": parent, "child_ids": children})
}

// HandleHistory returns the archived reports of one parent.
// @Summary Reconciliation history
// @Tags links
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Param limit query int false "Maximum number of reports" default(20)
// @Success 200 {array} ArchivedReport
// @Failure 404 {object} map[string]string "Unknown kind or archive disabled"
// @Router /links/{kind}/{parent}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	parent, err := utils.ParseID(c.Params("parent"))
	if err != nil {
		return h.badRequest(c, err)
	}

	history, err := h.service.History(c.UserContext(), c.Params("kind"), parent, c.QueryInt("limit", 20))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(history)
}

// HandlePreview returns the plan an update would apply.
// @Summary Preview link changes
// @Tags links
// @Accept json
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Param body body LinksRequest true "Desired child ids"
// @Success 200 {object} map[string]any "Plan"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /links/{kind}/{parent}/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	parent, desired, err := h.parseLinksRequest(c)
	if err != nil {
		return h.badRequest(c, err)
	}

	plan, err := h.service.Preview(c.UserContext(), c.Params("kind"), parent, desired)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

// HandleCreateLinks links children to a new parent.
// @Summary Create links
// @Tags links
// @Accept json
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Param body body LinksRequest true "Child ids"
// @Success 200 {object} Report
// @Success 207 {object} Report "Partial success"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /links/{kind}/{parent} [post]
func (h *Handler) HandleCreateLinks(c *fiber.Ctx) error {
	parent, children, err := h.parseLinksRequest(c)
	if err != nil {
		return h.badRequest(c, err)
	}

	report, err := h.service.Create(c.UserContext(), c.Params("kind"), parent, children)
	return h.respond(c, report, err)
}

// HandleUpdateLinks reconciles the links of a parent.
// @Summary Update links
// @Tags links
// @Accept json
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Param body body LinksRequest true "Desired child ids"
// @Success 200 {object} Report
// @Success 207 {object} Report "Partial success"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /links/{kind}/{parent} [put]
func (h *Handler) HandleUpdateLinks(c *fiber.Ctx) error {
	parent, desired, err := h.parseLinksRequest(c)
	if err != nil {
		return h.badRequest(c, err)
	}

	report, err := h.service.Update(c.UserContext(), c.Params("kind"), parent, desired)
	return h.respond(c, report, err)
}

// HandleDeleteLinks removes every link of a parent.
// @Summary Delete all links of a parent
// @Tags links
// @Produce json
// @Param kind path string true "Relationship kind"
// @Param parent path int true "Parent id"
// @Success 200 {object} Report
// @Success 207 {object} Report "Partial success"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /links/{kind}/{parent} [delete]
func (h *Handler) HandleDeleteLinks(c *fiber.Ctx) error {
	parent, err := utils.ParseID(c.Params("parent"))
	if err != nil {
		return h.badRequest(c, err)
	}

	report, err := h.service.DeleteAll(c.UserContext(), c.Params("kind"), parent)
	return h.respond(c, report, err)
}

var errMissingChildIDs = errors.New("child_ids is required")

func (h *Handler) parseLinksRequest(c *fiber.Ctx) (uint, []uint, error) {
	parent, err := utils.ParseID(c.Params("parent"))
	if err != nil {
		return 0, nil, err
	}

	var req LinksRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, nil, err
	}
	if req.ChildIDs == nil {
		return 0, nil, errMissingChildIDs
	}
	return parent, *req.ChildIDs, nil
}

func (h *Handler) respond(c *fiber.Ctx, report *Report, err error) error {
	if err != nil {
		return h.fail(c, err)
	}
	if report.Status == StatusPartial {
		logger.WithRayID(h.logger, c).Warn("Link changes partially failed",
			zap.String("kind", report.Kind),
			zap.Uint("parent_id", report.ParentID),
			zap.Int("failed", len(report.Failures)),
		)
		return c.Status(fiber.StatusMultiStatus).JSON(report)
	}
	return c.JSON(report)
}

func (h *Handler) badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownRelation), errors.Is(err, ErrArchiveDisabled):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrInvalidParent), errors.Is(err, reconcile.ErrInvalidChild):
		return h.badRequest(c, err)
	}

	logger.WithRayID(h.logger, c).Error("Link request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
