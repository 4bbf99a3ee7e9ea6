package marketplaceserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
	apierrors "github.com/Apurer/go-gin-marketplace-api/internal/shared/errors"
)

const validationFailedDetail = "Order validation failed"

// responder maps domain and application errors onto problem documents.
var responder = apierrors.NewResponder("",
	mapStoreError,
	mapOrderValidationError,
	mapOrderStatusError,
	mapOrderError,
)

// respondProblem writes a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError resolves err through the mapper chain, defaulting to a generic 500.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapStoreError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, storesports.ErrStoreNotFound) {
		return apierrors.NewNotFoundProblem("Store"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderValidationError(err error) (apierrors.ProblemDetail, bool) {
	var validation *ordersapp.ValidationError
	if errors.As(err, &validation) {
		return apierrors.NewValidationListProblem(validationFailedDetail, validation.Errors), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderStatusError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersdomain.ErrStatusRequired):
		return apierrors.ErrBadRequest.WithDetail("Status code required"), true
	case errors.Is(err, ordersdomain.ErrUnknownStatus):
		return apierrors.NewInvalidValueProblem("Invalid status code", ordersdomain.StatusCodes()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.NewNotFoundProblem("Order"), true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used with a different order"), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
