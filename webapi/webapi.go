// Package webapi provides HTTP handlers and API endpoints for the
// balancebook application. It is organized into sub-packages:
// - transaction: Balance use, cancel and query endpoints
// - account: Account provisioning and query endpoints
// - auth: Authentication endpoints
// - user: User management endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/balancebook/pkg/app"
	accountweb "github.com/amirasaad/balancebook/webapi/account"
	authweb "github.com/amirasaad/balancebook/webapi/auth"
	"github.com/amirasaad/balancebook/webapi/common"
	transactionweb "github.com/amirasaad/balancebook/webapi/transaction"
	userweb "github.com/amirasaad/balancebook/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with middleware and routes.
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed on the client address. Uses X-Forwarded-For when
	// behind a proxy, falling back to X-Real-IP and the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        app.Config.RateLimit.MaxRequests,
		Expiration: app.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(
				c,
				fiber.StatusTooManyRequests,
				"Too Many Requests",
				errors.New("rate limit exceeded").Error(),
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Balancebook API is running! 🚀")
	})

	transactionweb.Routes(fiberApp, app.TransactionService)
	accountweb.Routes(fiberApp, app.AccountService, app.AuthService, app.Config)
	userweb.Routes(fiberApp, app.UserService, app.AuthService, app.Config)
	authweb.Routes(fiberApp, app.AuthService)
	return fiberApp
}
