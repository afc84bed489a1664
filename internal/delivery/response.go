package delivery

import (
	"errors"
	"net/http"

	"marketplace_service/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, errorBody{Error: message})
}

func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageBody{Message: message})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrImageRequired), errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
