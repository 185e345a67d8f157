package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware())
	h.Post("/message", c.SendChat)
	h.Get("/quota", c.GetQuota)
	h.Get("/session", c.GetActiveSession)
	h.Post("/session/reset", c.ResetChat)
	h.Post("/session/:id/archive", c.ArchiveSession)
	h.Put("/session/:id/context", c.UpdateContext)
}

func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "reply generated", res)
}

func (c *chatbotController) GetQuota(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetQuota(ctx.Context(), userId)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "quota status", res)
}

func (c *chatbotController) GetActiveSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetActiveSession(ctx.Context(), userId)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "active session", res)
}

func (c *chatbotController) ResetChat(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ResetChat(ctx.Context(), userId)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "session reset", res)
}

func (c *chatbotController) ArchiveSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.service.ArchiveSession(ctx.Context(), userId, sessionId); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "session archived", nil)
}

func (c *chatbotController) UpdateContext(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.UpdateContextRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.UpdateContext(ctx.Context(), userId, sessionId, &req); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "context updated", nil)
}
