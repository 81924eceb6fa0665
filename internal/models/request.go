package models

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bytebitgo/rackview/internal/scene"
)

// PointerEventRequest represents a pointer event carrying a world-space ray
type PointerEventRequest struct {
	Origin    scene.Vec3 `json:"origin"`
	Direction scene.Vec3 `json:"direction"`
}

// Ray converts the request to a scene ray
func (r *PointerEventRequest) Ray() scene.Ray {
	return scene.Ray{Origin: r.Origin, Direction: r.Direction}
}

// Validate checks that the ray direction is usable
func (r *PointerEventRequest) Validate() error {
	if r.Ray().IsZero() {
		return fiber.NewError(fiber.StatusBadRequest, "ray direction must be non-zero")
	}
	return nil
}
