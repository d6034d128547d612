package response

import (
	"ticketforge/internal/shared/errs"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a ledger failure to its HTTP status and emits the
// standard envelope with the taxonomy code attached.
func RespondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	code, _ := errs.CodeOf(err)
	c.JSON(status, StandardApiResponse{
		Status:     "error",
		StatusCode: status,
		Message:    err.Error(),
		Code:       string(code),
	})
}
