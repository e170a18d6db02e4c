package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "campushub/internal/errors"
	"campushub/internal/models"
	"campushub/internal/service"
)

// Handlers binds the HTTP surface to the service layer
type Handlers struct {
	services *service.Services
}

func New(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.APIResponse{Success: false, Error: message})
}

// respondError maps domain sentinels onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrDuplicateRegistration):
		status, message = http.StatusConflict, "Already registered for this event"
	case errors.Is(err, apperrors.ErrSoldOut):
		status, message = http.StatusConflict, "No tickets available"
	case errors.Is(err, apperrors.ErrRegistrationClosed):
		status, message = http.StatusConflict, "Registration is closed for this event"
	case errors.Is(err, apperrors.ErrEmailTaken):
		status, message = http.StatusConflict, "Email is already registered"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, message = http.StatusForbidden, "Forbidden"
	}

	c.Error(err)
	c.JSON(status, models.APIResponse{Success: false, Error: message})
}

func currentUser(c *gin.Context) (int64, string) {
	return c.GetInt64("user_id"), c.GetString("user_role")
}
