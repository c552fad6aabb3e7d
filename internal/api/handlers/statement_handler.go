package handlers

import (
	"errors"

	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatementHandler struct {
	stmtService *service.StatementService
	logger      *zap.Logger
}

func NewStatementHandler(stmtService *service.StatementService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{
		stmtService: stmtService,
		logger:      logger,
	}
}

// Upload godoc
// @Summary Upload a bank statement
// @Description Store a statement file, extract its text, analyze it with the model and persist the derived transactions
// @Tags statements
// @Accept multipart/form-data
// @Produce json
// @Param statement formData file true "Statement file (PDF, CSV, XLSX, XLS or TXT)"
// @Param statementName formData string true "Display name"
// @Security Bearer
// @Success 200 {object} dto.UploadStatementResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/statements/upload [post]
func (h *StatementHandler) Upload(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("statement")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	resp, err := h.stmtService.Upload(c.Context(), userID, service.UploadInput{
		File:          file,
		FileName:      fileHeader.Filename,
		Size:          fileHeader.Size,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		StatementName: c.FormValue("statementName"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatementNameMissing),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrUnsupportedFileType),
			errors.Is(err, service.ErrUnparsable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to process statement", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process statement",
		})
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List uploaded statements
// @Description Paginated list of the user's statements, newest first
// @Tags statements
// @Produce json
// @Param userId path string true "User ID (must match token)"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {object} dto.StatementListResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/statements/user/{userId} [get]
func (h *StatementHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if pathUserMismatch(c, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Cannot access another user's data",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	resp, err := h.stmtService.List(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list statements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch statements",
		})
	}

	return c.JSON(resp)
}
