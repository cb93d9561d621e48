package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/design-tracker/internal/errors"
)

// Recovery turns a panic into a 500 error response
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger(c, log).WithField("stack", string(debug.Stack())).Errorf("panic recovered: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apierrors.NewAPIError(apierrors.ErrCodeInternalError, "Internal server error"))
			}
		}()
		c.Next()
	}
}
