package controller

import (
	"github.com/gofiber/fiber/v2"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware(), serverutils.RequireRole(entity.UserRoleAdmin))
	h.Get("/dashboard", c.Dashboard)
	h.Get("/logs", c.Logs)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.service.DashboardCounts(ctx.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "dashboard counts", res)
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	var query dto.LogQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := serverutils.ValidateStruct(&query); err != nil {
		return err
	}

	res, err := c.service.GetLogs(ctx.Context(), &query)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "logs", res)
}
