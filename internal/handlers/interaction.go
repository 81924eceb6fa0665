package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/models"
	"github.com/bytebitgo/rackview/internal/services"
)

// parsePointerEvent decodes and validates the ray payload shared by both
// interaction endpoints.
func (h *Handler) parsePointerEvent(c *fiber.Ctx) (*models.PointerEventRequest, error) {
	var req models.PointerEventRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}
	if err := req.Validate(); err != nil {
		fiberErr := err.(*fiber.Error)
		return nil, c.Status(fiberErr.Code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: fiberErr.Message,
			},
		})
	}
	return &req, nil
}

func interactionResponse(res *services.PointerResult) models.InteractionResponse {
	effects := res.Effects
	if effects == nil {
		effects = []models.EffectView{}
	}
	return models.InteractionResponse{
		Target:   models.NewTargetView(res.Target),
		Distance: res.Distance,
		Hit:      res.Hit,
		Effects:  effects,
		Panel:    res.Panel,
	}
}

// PointerMove handles POST /v1/interaction/pointer-move
func (h *Handler) PointerMove(c *fiber.Ctx) error {
	req, err := h.parsePointerEvent(c)
	if req == nil {
		return err
	}

	res := h.interactionService.PointerMove(c.Context(), req.Ray())
	return c.JSON(interactionResponse(res))
}

// Click handles POST /v1/interaction/click
func (h *Handler) Click(c *fiber.Ctx) error {
	req, err := h.parsePointerEvent(c)
	if req == nil {
		return err
	}

	res := h.interactionService.Click(c.Context(), req.Ray())
	return c.JSON(interactionResponse(res))
}

// GetInteractionState handles GET /v1/interaction/state
func (h *Handler) GetInteractionState(c *fiber.Ctx) error {
	return c.JSON(h.interactionService.State())
}

// GetPanel handles GET /v1/panel, rebuilding the current panel view
// against live telemetry.
func (h *Handler) GetPanel(c *fiber.Ctx) error {
	return c.JSON(h.interactionService.Panel())
}
