package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "fingerpay.backend/internal/domain/errors"
)

// Success sends {success:true, message, data}
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": http.StatusText(status),
		"data":    data,
	})
}

// Error sends {success:false, message, error?}. AppErrors carry their own
// status; bare domain sentinels are mapped through StatusFor.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"success": false,
			"message": appErr.Message,
			"error":   appErr.Error(),
		})
		return
	}

	c.JSON(domainerrors.StatusFor(err), gin.H{
		"success": false,
		"message": err.Error(),
	})
}
