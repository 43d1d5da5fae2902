// Package response implements the JSON envelope every endpoint returns:
// {success, data?, error?, message?}. Error responses carry the stable code in
// "error" and human-readable text in "message".
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/pkg/apperrors"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated wraps a page of items with the offset-based paging metadata the
// admin UI expects.
func Paginated(c *gin.Context, items interface{}, total int64, limit, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items":  items,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// Error converts any error into the envelope, mapping known AppErrors to their
// status and code and everything else to a 500 INTERNAL_ERROR.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	code := appErr.Code
	// The admin UI displays transition refusals straight from the "error"
	// field, so those carry the user-facing text rather than a code.
	if code == apperrors.CodeInvalidTransition {
		code = appErr.Message
	}
	c.JSON(appErr.Status, gin.H{
		"success": false,
		"error":   code,
		"message": appErr.Message,
	})
}

// ErrorWithCode responds with an explicit code and message, for cases where the
// user-facing error text doubles as the code (legacy admin UI contract).
func ErrorWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   code,
		"message": message,
	})
}
