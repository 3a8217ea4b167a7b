package handlers

import (
	"errors"
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/middleware"
	"github.com/rajeshboldtribe/boldserve/internal/service"
	"github.com/rajeshboldtribe/boldserve/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondError переводит ошибки сервисов в HTTP-ответ.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(verr.Message,
			[]dto.FieldError{{Field: verr.Field, Message: verr.Message}}))
	case errors.Is(err, service.ErrImageRequired):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("image is required",
			[]dto.FieldError{{Field: "image", Message: "image is required"}}))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	case errors.Is(err, upload.ErrRejected), middleware.IsBodyTooLarge(err):
		c.JSON(http.StatusBadRequest, dto.NewUploadError(uploadMessage(err)))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.NewInvalidCredentialsError("invalid email or password"))
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("resource not found"))
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusConflict, dto.NewConflictError("user with this email already exists"))
	case errors.Is(err, service.ErrMobileExists):
		c.JSON(http.StatusConflict, dto.NewConflictError("user with this mobile already exists"))
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewConflictError("resource already exists"))
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.NewInvalidTransitionError("status transition is not allowed"))
	default:
		log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		details := ""
		if gin.Mode() != gin.ReleaseMode {
			details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(details))
	}
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrTooLarge), middleware.IsBodyTooLarge(err):
		return "file is too large"
	case errors.Is(err, upload.ErrNotImage):
		return "only image uploads are allowed"
	}
	return "upload rejected"
}

func badRequest(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Warn(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, []dto.FieldError{}))
}

// pathID: строка, которая не парсится как UUID, не может быть ключом записи, поэтому 404, а не 400.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("resource not found"))
		return uuid.Nil, false
	}
	return id, true
}
