// Package webapi assembles the HTTP surface. It is organized into
// sub-packages per domain:
// - auth: Google login, session validation, logout, current user
// - user: wallet update and own-transaction listing
// - transaction: transaction CRUD
package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/middleware"
	authsvc "github.com/walletmaster/backend/pkg/service/auth"
	txsvc "github.com/walletmaster/backend/pkg/service/transaction"
	usersvc "github.com/walletmaster/backend/pkg/service/user"
	authweb "github.com/walletmaster/backend/webapi/auth"
	"github.com/walletmaster/backend/webapi/common"
	transactionweb "github.com/walletmaster/backend/webapi/transaction"
	userweb "github.com/walletmaster/backend/webapi/user"
)

// SetupApp initializes Fiber with the middleware chain and all routes.
// The auth resolve stage runs globally and never rejects; protected routes
// add the require stage themselves.
func SetupApp(
	cfg *config.App,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	txSvc *txsvc.Service,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			var details any
			if !cfg.IsProduction() {
				details = err.Error()
			}
			return common.ErrorJSON(
				c, status,
				"An unexpected error occurred",
				common.CodeInternalError,
				details,
			)
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Cors.AllowOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,X-Requested-With,Accept,Origin",
		MaxAge:           int((24 * time.Hour).Seconds()),
	}))
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.ResolveAuth(authSvc))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Env,
		})
	})

	authweb.Routes(app, authSvc, userSvc, cfg)
	userweb.Routes(app, userSvc, txSvc)
	transactionweb.Routes(app, txSvc)

	return app
}
