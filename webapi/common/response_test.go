package common_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		want int
	}{
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{domain.ErrAccountNotFound, fiber.StatusNotFound},
		{domain.ErrTransactionNotFound, fiber.StatusNotFound},
		{domain.ErrUserAccountMismatch, fiber.StatusForbidden},
		{domain.ErrTransactionAccountMismatch, fiber.StatusForbidden},
		{domain.ErrAccountAlreadyUnregistered, fiber.StatusUnprocessableEntity},
		{domain.ErrAmountExceedsBalance, fiber.StatusUnprocessableEntity},
		{domain.ErrCancelMustBeFull, fiber.StatusUnprocessableEntity},
		{domain.ErrTransactionTooOldToCancel, fiber.StatusUnprocessableEntity},
		{domain.ErrTransactionAlreadyCanceled, fiber.StatusUnprocessableEntity},
		{domain.ErrMaxAccountPerUser, fiber.StatusUnprocessableEntity},
		{domain.ErrBalanceNotEmpty, fiber.StatusUnprocessableEntity},
		{domain.ErrInvalidRequest, fiber.StatusBadRequest},
		{domain.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrLockTimeout, fiber.StatusConflict},
		{errors.New("anything else"), fiber.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, common.ErrorToStatusCode(tc.err), "error %v", tc.err)
	}
}

func TestErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()
	wrapped := errors.Join(errors.New("context"), domain.ErrAmountExceedsBalance)
	assert.Equal(t, fiber.StatusUnprocessableEntity, common.ErrorToStatusCode(wrapped))
}
