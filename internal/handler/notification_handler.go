package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/pkg/serverutils"
	internalWS "lending-concierge-be/internal/websocket"
)

// NotificationHandler owns the websocket endpoint and the admin broadcast.
type NotificationHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs upgrades the request to a websocket session. Browsers cannot set
// headers on websocket requests, so the token may also arrive as a query
// parameter.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return serverutils.ErrorResponse(c, fiber.StatusUnauthorized, "missing token")
	}

	claims, err := serverutils.ParseAccessToken(tokenStr)
	if err != nil {
		h.logger.Warn("notification_handler", "invalid token in ws handshake", map[string]interface{}{"error": err.Error()})
		return serverutils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid token")
	}

	userId, err := claims.UserUUID()
	if err != nil {
		return serverutils.ErrorResponse(c, fiber.StatusUnauthorized, "invalid token subject")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("notification_handler", "websocket session started", map[string]interface{}{"user_id": userId})
			internalWS.ServeWs(h.hub, conn, userId)
			h.logger.Info("notification_handler", "websocket session ended", map[string]interface{}{"user_id": userId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// Broadcast pushes a system-wide notification to every connected client.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	type Request struct {
		Title   string `json:"title" validate:"required"`
		Message string `json:"message" validate:"required"`
	}
	var req Request
	if err := serverutils.ParseAndValidate(c, &req); err != nil {
		return err
	}

	h.hub.Broadcast(internalWS.Notification{
		Kind:    "system_broadcast",
		Title:   req.Title,
		Message: req.Message,
	})

	return serverutils.SuccessResponse[any](c, fiber.StatusOK, "broadcast queued", nil)
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)

	admin := router.Group("/admin/notifications")
	admin.Use(serverutils.JwtMiddleware(), serverutils.RequireRole(entity.UserRoleAdmin))
	admin.Post("/broadcast", h.Broadcast)
}
