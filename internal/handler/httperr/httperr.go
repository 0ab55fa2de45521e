package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	// Outcome is only set on booking attempts, so clients can switch on one field.
	Outcome string `json:"outcome,omitempty"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, Response{Status: status}, err, msg, detail)
}

// AbortWithOutcome is AbortWithError for endpoints that report an outcome alongside the error.
func AbortWithOutcome(c *gin.Context, status int, err error, outcome, msg string, detail any) {
	abort(c, Response{Status: status, Outcome: outcome}, err, msg, detail)
}

func abort(c *gin.Context, resp Response, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
