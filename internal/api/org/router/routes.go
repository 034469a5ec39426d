// Package router đăng ký các route thuộc domain tổ chức: vòng đời tổ chức
// (public create/get, bearer update/delete) và đăng nhập admin.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/raghavkapoor31/Organization-Management-Service/internal/api/base/handler"
	"github.com/raghavkapoor31/Organization-Management-Service/internal/api/middleware"
	orghdl "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/handler"
	orgsvc "github.com/raghavkapoor31/Organization-Management-Service/internal/api/org/service"
)

// Register đăng ký tất cả route của ứng dụng lên app.
func Register(app *fiber.App) error {
	orgService := orgsvc.NewOrganizationServiceDefault()
	tokenService := orgsvc.NewTokenServiceDefault()

	orgHandler := orghdl.NewOrgHandler(orgService, tokenService)
	systemHandler := basehdl.NewSystemHandler()
	auth := middleware.NewAuthMiddleware(tokenService)

	// System routes
	app.Get("/", systemHandler.HandleRoot)
	app.Get("/health", systemHandler.HandleHealth)

	// Organization lifecycle
	org := app.Group("/org")
	org.Post("/create", orgHandler.HandleCreate)
	org.Get("/get", orgHandler.HandleGet)
	org.Put("/update", orgHandler.HandleUpdate, auth.RequireAdmin())
	org.Delete("/delete", orgHandler.HandleDelete, auth.RequireAdmin())

	// Admin authentication
	admin := app.Group("/admin")
	admin.Post("/login", orgHandler.HandleLogin)

	return nil
}
