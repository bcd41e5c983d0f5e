package http

import (
	"errors"
	"fmt"
	"net/http"

	"distributor-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError переводит ошибки сервисного слоя в HTTP-ответы.
// Вся таксономия: validation_error / invalid_state / insufficient_stock /
// not_found / unauthorized / forbidden / conflict / internal_error.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	var (
		advanceErr  *service.AdvanceLimitError
		mismatchErr *service.AmountMismatchError
		stockErr    *service.InsufficientStockError
		stateErr    *service.InvalidStateError
	)

	switch {
	case errors.As(err, &advanceErr):
		c.JSON(http.StatusBadRequest, NewValidationError(
			"advance payment cannot exceed 60% of total amount",
			fmt.Sprintf("limit_cents=%d given_cents=%d", advanceErr.LimitCents, advanceErr.GivenCents)))
	case errors.As(err, &mismatchErr):
		c.JSON(http.StatusBadRequest, NewValidationError(
			"must collect exact amount",
			fmt.Sprintf("expected_cents=%d given_cents=%d", mismatchErr.ExpectedCents, mismatchErr.GivenCents)))
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, NewInsufficientStockError(
			"insufficient stock",
			fmt.Sprintf("product=%s have=%d need=%d", stockErr.Product, stockErr.Have, stockErr.Need)))
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, NewInvalidStateError(
			"command not applicable to current order status",
			fmt.Sprintf("command=%s status=%s", stateErr.Command, stateErr.Status)))
	case errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrAmountNegative),
		errors.Is(err, service.ErrRoleInvalid):
		c.JSON(http.StatusBadRequest, NewValidationError(err.Error(), ""))
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, NewForbiddenError("role not permitted for this command"))
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, NewConflictError(err.Error()))
	default:
		// StorageFailure и прочее неожиданное: фатально для запроса,
		// без автоматических повторов.
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewInternalError())
	}
}
