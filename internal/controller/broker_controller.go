package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

type IBrokerController interface {
	RegisterRoutes(r fiber.Router)
}

type brokerController struct {
	service service.IBrokerService
}

func NewBrokerController(service service.IBrokerService) IBrokerController {
	return &brokerController{service: service}
}

func (c *brokerController) RegisterRoutes(r fiber.Router) {
	// Public directory
	pub := r.Group("/broker/v1")
	pub.Get("", c.List)
	pub.Get("/:id", c.Get)

	// Admin management
	admin := r.Group("/admin/v1/brokers")
	admin.Use(serverutils.JwtMiddleware(), serverutils.RequireRole(entity.UserRoleAdmin))
	admin.Post("", c.Create)
	admin.Put("/:id", c.Update)
	admin.Delete("/:id", c.Delete)
}

func (c *brokerController) List(ctx *fiber.Ctx) error {
	featured := ctx.QueryBool("featured", false)
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.service.List(ctx.Context(), featured, limit, offset)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.PaginatedSuccessResponse(ctx, fiber.StatusOK, "brokers", res, total, limit, offset)
}

func (c *brokerController) Get(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid broker id")
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "broker", res)
}

func (c *brokerController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBrokerRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "broker created", res)
}

func (c *brokerController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid broker id")
	}

	var req dto.UpdateBrokerRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "broker updated", res)
}

func (c *brokerController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid broker id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "broker deleted", nil)
}
