package http_handler

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAdminStats(c *fiber.Ctx) error {
	stats, err := s.stats.AdminStats(c.Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

func (s *Server) handleAdminDeleteFile(c *fiber.Ctx) error {
	if err := s.files.AdminDeleteFile(c.Context(), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "File and associated data deleted successfully",
	})
}

func (s *Server) handleAdminDeleteChart(c *fiber.Ctx) error {
	if err := s.charts.AdminDeleteChart(c.Context(), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Chart deleted successfully",
	})
}
