package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskpalette/pkg/errutil"
)

// Error renders the last error recorded on the context as a JSON body.
// BaseError values map to their HTTP status; anything else is a 500.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}

		var base errutil.BaseError
		if errors.As(err.Err, &base) {
			c.JSON(base.Code.HTTPStatus(), gin.H{"error": base.Message})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
