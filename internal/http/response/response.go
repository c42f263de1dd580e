package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// FromError maps a service error onto the envelope using the apierr taxonomy.
func FromError(c *gin.Context, err error) {
	aerr := apierr.From(err)
	RespondError(c, aerr.Status, aerr.Code, aerr.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
