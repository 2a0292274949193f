// Package account exposes HTTP endpoints for account provisioning and
// queries.
package account

import (
	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/middleware"
	accountsvc "github.com/amirasaad/balancebook/pkg/service/account"
	authsvc "github.com/amirasaad/balancebook/pkg/service/auth"
	"github.com/amirasaad/balancebook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for account operations. All routes require a
// valid JWT; the account owner is taken from the token, never from the body.
//
// Routes:
//   - POST   /account                          : Open a new account for the authenticated user.
//   - DELETE /account/:number                  : Close the specified account.
//   - GET    /account                          : List the user's accounts.
//   - GET    /account/:number/balance          : Retrieve the account balance.
//   - GET    /account/:number/transactions     : List the account's transactions.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/account", middleware.JwtProtected(cfg.Auth.Jwt), CreateAccount(accountSvc, authSvc))
	app.Delete("/account/:number", middleware.JwtProtected(cfg.Auth.Jwt), CloseAccount(accountSvc, authSvc))
	app.Get("/account", middleware.JwtProtected(cfg.Auth.Jwt), ListAccounts(accountSvc, authSvc))
	app.Get("/account/:number/balance", middleware.JwtProtected(cfg.Auth.Jwt), GetBalance(accountSvc, authSvc))
	app.Get("/account/:number/transactions", middleware.JwtProtected(cfg.Auth.Jwt), GetTransactions(accountSvc, authSvc))
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authSvc.GetCurrentUserID(token)
}

// CreateAccount returns a Fiber handler that opens a new account for the
// authenticated user, optionally seeded with an initial balance.
// @Summary Open a new account
// @Description Opens a new account for the authenticated user. Account numbers are assigned sequentially.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account opened"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 422 {object} common.ProblemDetails "Account limit reached"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account [post]
// @Security Bearer
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), dto.AccountCreate{
			UserID:         userID,
			InitialBalance: input.InitialBalance,
		})
		if err != nil {
			log.Errorf("Failed to open account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", a)
	}
}

// CloseAccount returns a Fiber handler that closes the specified account.
// The account must belong to the authenticated user and carry no balance.
// @Summary Close an account
// @Description Closes the specified account. The balance must be zero.
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} common.Response "Account closed"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 403 {object} common.ProblemDetails "Account belongs to another user"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Balance not empty or already closed"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account/{number} [delete]
// @Security Bearer
func CloseAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		a, err := accountSvc.CloseAccount(c.Context(), userID, c.Params("number"))
		if err != nil {
			log.Errorf("Failed to close account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", a)
	}
}

// ListAccounts returns a Fiber handler that lists the authenticated user's
// accounts.
// @Summary List accounts
// @Description Lists all accounts belonging to the authenticated user.
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Accounts listed"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts listed", accounts)
	}
}

// GetBalance returns a Fiber handler that retrieves the current balance of
// the specified account.
// @Summary Get account balance
// @Description Returns the current balance of the specified account.
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} common.Response "Balance retrieved"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 403 {object} common.ProblemDetails "Account belongs to another user"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account/{number}/balance [get]
// @Security Bearer
func GetBalance(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		balance, err := accountSvc.GetBalance(c.Context(), userID, c.Params("number"))
		if err != nil {
			log.Errorf("Failed to get balance: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance retrieved", fiber.Map{
			"accountNumber": c.Params("number"),
			"balance":       balance,
		})
	}
}

// GetTransactions returns a Fiber handler that lists the transactions
// recorded against the specified account, newest first.
// @Summary List account transactions
// @Description Lists the transactions recorded against the specified account, newest first.
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} common.Response "Transactions listed"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 403 {object} common.ProblemDetails "Account belongs to another user"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account/{number}/transactions [get]
// @Security Bearer
func GetTransactions(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		txs, err := accountSvc.ListTransactions(c.Context(), userID, c.Params("number"))
		if err != nil {
			log.Errorf("Failed to list transactions: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions listed", txs)
	}
}
