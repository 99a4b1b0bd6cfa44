package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/core/ports"
)

type RegionHandler struct {
	regions ports.RegionService
}

func NewRegionHandler(regions ports.RegionService) *RegionHandler {
	return &RegionHandler{regions: regions}
}

func (h *RegionHandler) ListRegions(c *fiber.Ctx) error {
	regions, err := h.regions.ListRegions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(regions)
}

func (h *RegionHandler) ListSubregions(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	subregions, err := h.regions.SubregionsOf(c.Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(subregions)
}

func (h *RegionHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.regions.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}
