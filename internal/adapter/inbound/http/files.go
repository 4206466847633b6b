package http_handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-sheet-charts/internal/adapter/inbound/http/middleware"
	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/parser"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
)

const defaultListLimit = 10

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'file' part")
	}

	fileType := domain.FileType(strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), ".")))
	if !fileType.Valid() {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Only Excel and CSV files are allowed")
	}

	src, err := fh.Open()
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Unreadable upload")
	}
	data, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Unreadable upload")
	}
	if len(data) == 0 {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Empty upload")
	}

	columns, rows, err := parser.Parse(fileType, data)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Failed to parse spreadsheet: "+err.Error())
	}

	handle, checksum, err := s.payloads.Save(c.Context(), fh.Filename, data)
	if err != nil {
		logger.Errorw("Payload save failed", "file_name", fh.Filename, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	file, err := s.files.CreateFile(c.Context(), port.CreateFileInput{
		OwnerID:       middleware.OwnerID(c),
		Name:          fh.Filename,
		Type:          fileType,
		Size:          int64(len(data)),
		Columns:       columns,
		Rows:          rows,
		PayloadHandle: handle,
		Checksum:      checksum,
	})
	if err != nil {
		// The record never existed, so the payload must not linger.
		if delErr := s.payloads.Delete(c.Context(), handle); delErr != nil {
			logger.Warnw("Orphan payload cleanup failed", "handle", handle, "error", delErr.Error())
		}
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"file": fiber.Map{
			"id":          file.ID,
			"file_name":   file.Name,
			"file_type":   file.Type,
			"file_size":   file.Size,
			"status":      file.Status,
			"upload_date": file.CreatedAt,
			"columns":     file.Columns,
			"row_count":   file.RowCount,
			"preview":     file.Preview,
		},
	})
}

func (s *Server) handleListFiles(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	files, err := s.files.ListFiles(c.Context(), middleware.OwnerID(c), limit)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "files": files})
}

func (s *Server) handleListAllFiles(c *fiber.Ctx) error {
	files, err := s.files.ListFiles(c.Context(), middleware.OwnerID(c), 0)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "files": files})
}

func (s *Server) handleFileData(c *fiber.Ctx) error {
	file, err := s.files.GetFile(c.Context(), c.Params("id"), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"columns": file.Columns,
			"rows":    file.Rows,
			"preview": file.Preview,
		},
	})
}

func (s *Server) handleFilePreview(c *fiber.Ctx) error {
	file, err := s.files.GetFile(c.Context(), c.Params("id"), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"columns":    file.Columns,
			"preview":    file.Preview,
			"file_name":  file.Name,
			"total_rows": file.RowCount,
		},
	})
}

func (s *Server) handleDeleteFile(c *fiber.Ctx) error {
	if err := s.files.DeleteFile(c.Context(), c.Params("id"), middleware.OwnerID(c)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "File and associated charts deleted successfully",
	})
}

func (s *Server) handleFileStats(c *fiber.Ctx) error {
	stats, err := s.stats.FileStats(c.Context(), middleware.OwnerID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
