package http_handler

import (
	"github.com/anthanhphan/go-sheet-charts/internal/adapter/inbound/http/middleware"
	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/gofiber/fiber/v2"
)

// saveChartRequest mirrors what the chart builder UI sends. Any dimension
// field in the body is ignored; the dimension is derived server-side.
type saveChartRequest struct {
	FileID      string           `json:"file_id"`
	ChartType   domain.ChartType `json:"chart_type"`
	Title       string           `json:"title"`
	XAxis       string           `json:"x_axis"`
	YAxis       string           `json:"y_axis"`
	ZAxis       string           `json:"z_axis"`
	Data        []domain.Point   `json:"data"`
	DataPreview []domain.Point   `json:"data_preview"`
	Image       string           `json:"image"`
}

func (s *Server) handleSaveChart(c *fiber.Ctx) error {
	var req saveChartRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Malformed chart payload")
	}

	summary, err := s.charts.CreateChart(c.Context(), port.CreateChartInput{
		OwnerID:     middleware.OwnerID(c),
		FileID:      req.FileID,
		Type:        req.ChartType,
		Title:       req.Title,
		XAxis:       req.XAxis,
		YAxis:       req.YAxis,
		ZAxis:       req.ZAxis,
		Data:        req.Data,
		DataPreview: req.DataPreview,
		Image:       req.Image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"chart":   summary,
	})
}

func (s *Server) handleGetChart(c *fiber.Ctx) error {
	chart, err := s.charts.GetChart(c.Context(), c.Params("id"), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "chart": chart})
}

// handleListChartSummaries returns the lightweight list the saved-charts
// page renders: no data series, just identity and image.
func (s *Server) handleListChartSummaries(c *fiber.Ctx) error {
	charts, err := s.charts.ListCharts(c.Context(), middleware.OwnerID(c), 0)
	if err != nil {
		return s.respondError(c, err)
	}

	summaries := make([]fiber.Map, 0, len(charts))
	for _, chart := range charts {
		summaries = append(summaries, fiber.Map{
			"id":         chart.ID,
			"title":      chart.Title,
			"chart_type": chart.Type,
			"dimension":  chart.Dimension,
			"created_at": chart.CreatedAt,
			"image":      chart.Image,
		})
	}
	return c.JSON(fiber.Map{"success": true, "charts": summaries})
}

func (s *Server) handleListAllCharts(c *fiber.Ctx) error {
	charts, err := s.charts.ListCharts(c.Context(), middleware.OwnerID(c), 0)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "charts": charts})
}

func (s *Server) handleDeleteChart(c *fiber.Ctx) error {
	if err := s.charts.DeleteChart(c.Context(), c.Params("id"), middleware.OwnerID(c)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Chart deleted successfully",
	})
}

func (s *Server) handleChartExpiry(c *fiber.Ctx) error {
	expiry, err := s.charts.ChartExpiry(c.Context(), c.Params("id"), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"created_at":     expiry.CreatedAt,
			"expiry_time":    expiry.ExpiresAt,
			"remaining_time": expiry.Remaining.Milliseconds(),
			"is_expired":     expiry.IsExpired,
		},
	})
}

func (s *Server) handleChartStats(c *fiber.Ctx) error {
	stats, err := s.stats.ChartStats(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
