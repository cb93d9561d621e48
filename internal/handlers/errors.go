package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/design-tracker/internal/errors"
	"github.com/yukikurage/design-tracker/internal/middleware"
	"github.com/yukikurage/design-tracker/internal/services"
)

// respondServiceError maps service errors to API responses. Anything
// unrecognised is logged and reported as a generic 500.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, action string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.MissingField(c, "taskName is required")
	case errors.Is(err, services.ErrMemberNameRequired):
		apierrors.MissingField(c, "Name is required")
	case errors.Is(err, services.ErrMemberExists):
		apierrors.AlreadyExists(c, "Member already exists")
	default:
		middleware.Logger(c, log).WithError(err).Error(action)
		apierrors.InternalError(c, action)
	}
}
