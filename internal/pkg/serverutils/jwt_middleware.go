package serverutils

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessClaims struct {
	UserId string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserUUID parses the user id claim.
func (c *AccessClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserId)
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateAccessToken signs a short-lived access token carrying the user id
// and role.
func GenerateAccessToken(userId uuid.UUID, role string, ttl time.Duration) (string, error) {
	claims := AccessClaims{
		UserId: userId.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userId.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JwtMiddleware authenticates the request and stores user_id and user_role in
// the request locals.
func JwtMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "invalid authorization header format")
		}

		claims, err := ParseAccessToken(tokenString)
		if err != nil {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "invalid or expired token")
		}

		userId, err := uuid.Parse(claims.UserId)
		if err != nil {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "invalid token subject")
		}

		ctx.Locals("user_id", userId)
		ctx.Locals("user_role", claims.Role)
		return ctx.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// JwtMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("user_role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ErrorResponse(ctx, fiber.StatusForbidden, "insufficient permissions")
	}
}

// UserIdFromLocals extracts the authenticated user id set by JwtMiddleware.
func UserIdFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthenticated")
	}
	return userId, nil
}
