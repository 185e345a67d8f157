package controller

import (
	"github.com/gofiber/fiber/v2"

	"lending-concierge-be/internal/config"
	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/pkg/serverutils"
	"lending-concierge-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
}

type authController struct {
	service service.IAuthService
	cfg     *config.Config
}

func NewAuthController(service service.IAuthService, cfg *config.Config) IAuthController {
	return &authController{service: service, cfg: cfg}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("/register", c.Register)
	h.Post("/verify-email", c.VerifyEmail)
	h.Post("/login", c.Login)
	h.Post("/refresh", c.Refresh)
	h.Post("/logout", c.Logout)
	h.Post("/forgot-password", c.ForgotPassword)
	h.Post("/reset-password", c.ResetPassword)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "registration successful, check your email for the otp code", res)
}

func (c *authController) VerifyEmail(ctx *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.VerifyEmail(ctx.Context(), &req); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "email verified", nil)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "login successful", res)
}

func (c *authController) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Refresh(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "token refreshed", res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.Logout(ctx.Context(), req.RefreshToken); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "logged out", nil)
}

func (c *authController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ForgotPassword(ctx.Context(), &req, c.cfg.App.ClientURL); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "if the email exists, a reset link has been sent", nil)
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.service.ResetPassword(ctx.Context(), &req); err != nil {
		return mapServiceError(err)
	}
	return serverutils.SuccessResponse[any](ctx, fiber.StatusOK, "password reset", nil)
}
