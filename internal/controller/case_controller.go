package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

const maxImageSize = 10 << 20 // 10 MiB

type ICaseController interface {
	RegisterRoutes(r fiber.Router)
}

type caseController struct {
	service        service.ICaseService
	galleryService service.IGalleryService
}

func NewCaseController(service service.ICaseService, galleryService service.IGalleryService) ICaseController {
	return &caseController{
		service:        service,
		galleryService: galleryService,
	}
}

func (c *caseController) RegisterRoutes(r fiber.Router) {
	// Public catalog: published cases only
	pub := r.Group("/case/v1")
	pub.Get("", c.ListPublished)
	pub.Get("/:id", c.GetPublished)

	// Admin management
	admin := r.Group("/admin/v1/cases")
	admin.Use(serverutils.JwtMiddleware(), serverutils.RequireRole(entity.UserRoleAdmin))
	admin.Get("", c.ListAll)
	admin.Post("", c.Create)
	admin.Get("/:id", c.GetAny)
	admin.Put("/:id", c.Update)
	admin.Delete("/:id", c.Delete)
	admin.Post("/:id/publish", c.Publish)
	admin.Post("/:id/close", c.Close)

	// Gallery
	admin.Post("/:id/images", c.UploadImage)
	admin.Put("/:id/images/:imageId", c.UpdateImage)
	admin.Delete("/:id/images/:imageId", c.DeleteImage)
}

func parseCaseId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}
	return id, nil
}

func (c *caseController) list(ctx *fiber.Ctx, includeUnpublished bool) error {
	var query dto.CaseListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := serverutils.ValidateStruct(&query); err != nil {
		return err
	}

	res, total, err := c.service.List(ctx.Context(), &query, includeUnpublished)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.PaginatedSuccessResponse(ctx, fiber.StatusOK, "cases", res, total, query.Limit, query.Offset)
}

func (c *caseController) ListPublished(ctx *fiber.Ctx) error {
	return c.list(ctx, false)
}

func (c *caseController) ListAll(ctx *fiber.Ctx) error {
	return c.list(ctx, true)
}

func (c *caseController) get(ctx *fiber.Ctx, includeUnpublished bool) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), id, includeUnpublished)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "case", res)
}

func (c *caseController) GetPublished(ctx *fiber.Ctx) error {
	return c.get(ctx, false)
}

func (c *caseController) GetAny(ctx *fiber.Ctx) error {
	return c.get(ctx, true)
}

func (c *caseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "case created", res)
}

func (c *caseController) Update(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCaseRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "case updated", res)
}

func (c *caseController) Delete(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "case deleted", nil)
}

func (c *caseController) Publish(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Publish(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "case published", res)
}

func (c *caseController) Close(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Close(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "case closed", res)
}

func (c *caseController) UploadImage(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size > maxImageSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "image exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	caption := ctx.FormValue("caption")

	res, err := c.galleryService.UploadImage(ctx.Context(), id, fileHeader.Filename, contentType, fileHeader.Size, file, caption)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "image uploaded", res)
}

func (c *caseController) UpdateImage(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}
	imageId, err := uuid.Parse(ctx.Params("imageId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid image id")
	}

	var req dto.UpdateImageRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.galleryService.UpdateImage(ctx.Context(), id, imageId, &req); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "image updated", nil)
}

func (c *caseController) DeleteImage(ctx *fiber.Ctx) error {
	id, err := parseCaseId(ctx)
	if err != nil {
		return err
	}
	imageId, err := uuid.Parse(ctx.Params("imageId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid image id")
	}

	if err := c.galleryService.DeleteImage(ctx.Context(), id, imageId); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "image deleted", nil)
}
