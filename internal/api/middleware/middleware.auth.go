// Package middleware chứa các middleware xác thực cho API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/handler"
	orgsvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/service"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/common"
)

// Các key lưu trong fiber Locals sau khi xác thực thành công.
const (
	LocalAdminID          = "admin_id"
	LocalOrganizationName = "organization_name"
)

// AuthMiddleware xác thực JWT bearer cho các route cần đăng nhập.
type AuthMiddleware struct {
	tokenService *orgsvc.TokenService
}

// NewAuthMiddleware tạo middleware với token service tiêm từ ngoài.
func NewAuthMiddleware(tokenService *orgsvc.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// RequireAdmin kiểm tra header Authorization, xác thực token và đưa
// admin_id cùng organization_name vào Locals cho handler phía sau.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return writeAuthError(c, err)
		}

		claims, err := m.tokenService.VerifyAdminToken(tokenString)
		if err != nil {
			return writeAuthError(c, err)
		}

		c.Locals(LocalAdminID, claims.Subject)
		c.Locals(LocalOrganizationName, claims.OrganizationName)
		return c.Next()
	}
}

// extractBearerToken lấy token từ header "Authorization: Bearer <token>".
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}

// writeAuthError trả về lỗi xác thực theo format response chuẩn,
// kèm header WWW-Authenticate cho client biết scheme cần dùng.
func writeAuthError(c fiber.Ctx, err error) error {
	c.Set("WWW-Authenticate", "Bearer")
	if customErr, ok := err.(*common.Error); ok {
		return basehdl.JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"status":  "error",
		})
	}
	return basehdl.JSONResponse(c, common.StatusUnauthorized, fiber.Map{
		"code":    common.ErrCodeAuthToken.Code,
		"message": err.Error(),
		"status":  "error",
	})
}

// ActorOrganization lấy organization_name của token đã xác thực từ Locals.
func ActorOrganization(c fiber.Ctx) string {
	if org, ok := c.Locals(LocalOrganizationName).(string); ok {
		return org
	}
	return ""
}
