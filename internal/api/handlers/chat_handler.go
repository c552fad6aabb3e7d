package handlers

import (
	"finsight/internal/dto"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Send godoc
// @Summary Send a chat message
// @Description Send a message to the finance assistant and receive a reply grounded in the user's data
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Security Bearer
// @Success 200 {object} dto.SendMessageResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/chat/send [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	resp, err := h.chatService.SendMessage(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to process chat message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI assistant is unavailable, try again later",
		})
	}

	return c.JSON(resp)
}

// History godoc
// @Summary Chat history
// @Description Return the user's chat messages in chronological order
// @Tags chat
// @Produce json
// @Param userId path string true "User ID (must match token)"
// @Param limit query int false "Limit" default(50)
// @Security Bearer
// @Success 200 {object} dto.ChatHistoryResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/chat/history/{userId} [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
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

	limit := c.QueryInt("limit", 50)

	resp, err := h.chatService.History(c.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to fetch chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch chat history",
		})
	}

	return c.JSON(resp)
}
