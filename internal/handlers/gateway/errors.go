package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevin07696/stripe-gateway/internal/domain"
)

// statusForCode maps gateway error codes to HTTP statuses
func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrorCodeInvalidInput:
		return http.StatusBadRequest
	case domain.ErrorCodeConfiguration, domain.ErrorCodeRemoteInvalidRequest:
		return http.StatusUnprocessableEntity
	case domain.ErrorCodeRemoteCard:
		return http.StatusPaymentRequired
	case domain.ErrorCodeUnsupportedOperation:
		return http.StatusNotImplemented
	case domain.ErrorCodeRemoteAuthentication, domain.ErrorCodeRemoteGeneral:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody converts err into its wire form. Errors that are not gateway
// errors never expose their text.
func errorBody(err error) (int, ErrorBody) {
	if gwErr, ok := domain.AsGatewayError(err); ok {
		return statusForCode(gwErr.Code), ErrorBody{
			Code:    gwErr.Code,
			Message: gwErr.Message,
			Fields:  gwErr.Fields,
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorBody{Code: domain.ErrorCodeRemoteGeneral, Message: "request canceled"}
	}
	return http.StatusInternalServerError, ErrorBody{Code: domain.ErrorCodeRemoteGeneral, Message: "internal server error"}
}

func respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.JSON(status, ErrorResponse{Error: body})
}

func respondBadRequest(c *gin.Context, field, message string) {
	respondError(c, domain.NewInvalidInputError(field, message))
}

// respondTransaction writes a transaction result. Failures keep the result
// in the body next to the error.
func respondTransaction(c *gin.Context, result *domain.TransactionResult, err error) {
	if err == nil {
		c.JSON(http.StatusOK, TransactionResponse{Result: result})
		return
	}
	status, body := errorBody(err)
	if result != nil && result.Status == domain.TransactionStatusDeclined {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, TransactionResponse{Result: result, Error: &body})
}
