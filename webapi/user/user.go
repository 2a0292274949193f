// Package user exposes HTTP endpoints for user registration and lookup.
package user

import (
	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/middleware"
	authsvc "github.com/amirasaad/balancebook/pkg/service/auth"
	usersvc "github.com/amirasaad/balancebook/pkg/service/user"
	"github.com/amirasaad/balancebook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
)

// Routes registers HTTP routes for user operations.
//
// Routes:
//   - POST /user     : Register a new user.
//   - GET  /user/me  : Return the authenticated user.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/user", Register(userSvc))
	app.Get("/user/me", middleware.JwtProtected(cfg.Auth.Jwt), Me(userSvc, authSvc))
}

// Register returns a Fiber handler that registers a new user.
// @Summary Register a user
// @Description Registers a new user with a username, email and password.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User details"
// @Success 201 {object} common.Response "User registered"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Register(c.Context(), dto.UserCreate{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			log.Errorf("Failed to register user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", u)
	}
}

// Me returns a Fiber handler that returns the authenticated user.
// @Summary Current user
// @Description Returns the user identified by the bearer token.
// @Tags users
// @Produce json
// @Success 200 {object} common.Response "User found"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "User not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /user/me [get]
// @Security Bearer
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
		}
		userID, err := authSvc.GetCurrentUserID(token)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to get user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}
