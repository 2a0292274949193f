// Package transaction exposes HTTP endpoints for spending and reversing
// account balance.
package transaction

import (
	"context"
	"errors"

	"github.com/amirasaad/balancebook/pkg/domain"
	transactionsvc "github.com/amirasaad/balancebook/pkg/service/transaction"
	"github.com/amirasaad/balancebook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for balance transactions.
//
// Routes:
//   - POST /transaction/use             : Spend an amount from an account.
//   - POST /transaction/cancel          : Reverse a prior use in full.
//   - GET  /transaction/:transactionId  : Look up a transaction by its public id.
func Routes(app *fiber.App, txSvc *transactionsvc.Service) {
	app.Post("/transaction/use", UseBalance(txSvc))
	app.Post("/transaction/cancel", CancelBalance(txSvc))
	app.Get("/transaction/:transactionId", QueryTransaction(txSvc))
}

// UseBalance returns a Fiber handler that spends an amount from an account.
// When the engine rejects the request, a failed ledger entry is recorded
// best-effort before the error response is written.
// @Summary Use balance
// @Description Spends the given amount from the account, holding the account lock for the duration. Returns the recorded transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body UseBalanceRequest true "Use details"
// @Success 200 {object} common.Response "Balance used"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "User or account not found"
// @Failure 422 {object} common.ProblemDetails "Business rule violated"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transaction/use [post]
func UseBalance(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UseBalanceRequest](c)
		if input == nil {
			return err
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user ID", err.Error())
		}
		tx, err := txSvc.UseBalance(c.Context(), transactionsvc.UseBalanceRequest{
			UserID:        userID,
			AccountNumber: input.AccountNumber,
			Amount:        input.Amount,
		})
		if err != nil {
			log.Errorf("Failed to use balance: %v", err)
			recordFailure(c, txSvc.RecordFailedUse, input.AccountNumber, input.Amount, err)
			return common.ProblemDetailsJSON(c, "Failed to use balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance used", tx)
	}
}

// CancelBalance returns a Fiber handler that reverses a prior use in full.
// @Summary Cancel balance use
// @Description Reverses a prior use in full, restoring the amount to the account. Partial cancels are rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CancelBalanceRequest true "Cancel details"
// @Success 200 {object} common.Response "Balance use canceled"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Transaction or account not found"
// @Failure 422 {object} common.ProblemDetails "Business rule violated"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transaction/cancel [post]
func CancelBalance(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CancelBalanceRequest](c)
		if input == nil {
			return err
		}
		tx, err := txSvc.CancelBalance(c.Context(), transactionsvc.CancelBalanceRequest{
			TransactionID: input.TransactionID,
			AccountNumber: input.AccountNumber,
			Amount:        input.Amount,
		})
		if err != nil {
			log.Errorf("Failed to cancel balance use: %v", err)
			recordFailure(c, txSvc.RecordFailedCancel, input.AccountNumber, input.Amount, err)
			return common.ProblemDetailsJSON(c, "Failed to cancel balance use", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance use canceled", tx)
	}
}

// QueryTransaction returns a Fiber handler that looks up a transaction by its
// public id.
// @Summary Query a transaction
// @Description Returns the transaction recorded under the given public id, successful or failed.
// @Tags transactions
// @Produce json
// @Param transactionId path string true "Transaction ID"
// @Success 200 {object} common.Response "Transaction found"
// @Failure 404 {object} common.ProblemDetails "Transaction not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transaction/{transactionId} [get]
func QueryTransaction(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx, err := txSvc.QueryTransaction(c.Context(), c.Params("transactionId"))
		if err != nil {
			log.Errorf("Failed to query transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to query transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", tx)
	}
}

// recordFailure writes a failed ledger entry for a rejected request. A lock
// timeout means the account could not be locked at all, so nothing is
// recorded for it. Recording errors are logged and swallowed.
func recordFailure(
	c *fiber.Ctx,
	record func(ctx context.Context, accountNumber string, amount int64) error,
	accountNumber string,
	amount int64,
	cause error,
) {
	if errors.Is(cause, domain.ErrLockTimeout) || errors.Is(cause, domain.ErrAccountNotFound) {
		return
	}
	if err := record(c.Context(), accountNumber, amount); err != nil {
		log.Errorf("Failed to record failed transaction: %v", err)
	}
}
