package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

type IInquiryController interface {
	RegisterRoutes(r fiber.Router)
}

type inquiryController struct {
	service service.IInquiryService
}

func NewInquiryController(service service.IInquiryService) IInquiryController {
	return &inquiryController{service: service}
}

func (c *inquiryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/inquiry/v1")
	h.Use(serverutils.JwtMiddleware())
	h.Post("", c.Create)
	h.Get("/mine", c.ListMine)

	admin := r.Group("/admin/v1/inquiries")
	admin.Use(serverutils.JwtMiddleware(), serverutils.RequireRole(entity.UserRoleAdmin, entity.UserRoleBroker))
	admin.Get("", c.ListAll)
	admin.Put("/:id/status", c.UpdateStatus)
}

func (c *inquiryController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateInquiryRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "inquiry sent", res)
}

func (c *inquiryController) ListMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.service.ListByUser(ctx.Context(), userId, limit, offset)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.PaginatedSuccessResponse(ctx, fiber.StatusOK, "inquiries", res, total, limit, offset)
}

func (c *inquiryController) ListAll(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.service.ListAll(ctx.Context(), status, limit, offset)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.PaginatedSuccessResponse(ctx, fiber.StatusOK, "inquiries", res, total, limit, offset)
}

func (c *inquiryController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid inquiry id")
	}

	var req dto.UpdateInquiryStatusRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.UpdateStatus(ctx.Context(), id, &req); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "inquiry status updated", nil)
}
