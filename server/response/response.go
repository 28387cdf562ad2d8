package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/greencycle/wastetrack/errors"
)

// JSON writes the uniform response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	})
}

// HandleErrors maps the service error taxonomy onto HTTP statuses.
func HandleErrors(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		JSON(c, "", http.StatusBadRequest, nil, err)
	case errors.Is(err, errs.ErrNotFound):
		JSON(c, "", http.StatusNotFound, nil, err)
	case errors.Is(err, errs.ErrInsufficientPoints):
		JSON(c, "", http.StatusUnprocessableEntity, nil, err)
	default:
		JSON(c, "", errs.Status(err), nil, err)
	}
}
