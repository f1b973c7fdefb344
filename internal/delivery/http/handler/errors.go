package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MohdOwais22/subaku-backend/internal/logger"
	"github.com/MohdOwais22/subaku-backend/internal/middleware"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternal = "Internal server error"

// errorStatuses is checked in order; the first sentinel matched by errors.Is
// decides the response. Specific sentinels precede the ones they wrap.
var errorStatuses = []struct {
	target  error
	status  int
	message string
}{
	{appErrors.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{appErrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{appErrors.ErrReviewNotFound, http.StatusNotFound, "Review not found"},
	{appErrors.ErrNotFound, http.StatusNotFound, "Resource not found"},

	{appErrors.ErrMissingCredential, http.StatusBadRequest, "Please Enter Email & Password"},
	{appErrors.ErrPasswordMismatch, http.StatusBadRequest, "Password does not match"},
	{appErrors.ErrOldPasswordWrong, http.StatusBadRequest, "Old password is incorrect"},
	{appErrors.ErrValidation, http.StatusBadRequest, "Invalid input data"},

	{appErrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{appErrors.ErrInvalidResetToken, http.StatusUnauthorized, "Reset Password Token is invalid or has been expired"},
	{appErrors.ErrUnauthorized, http.StatusUnauthorized, "Please Login to access this resource"},
	{appErrors.ErrForbidden, http.StatusForbidden, "You are not allowed to access this resource"},

	{appErrors.ErrUserAlreadyExists, http.StatusConflict, "User already exists"},
	{appErrors.ErrConflict, http.StatusConflict, "The resource was modified by another request, please retry"},

	{appErrors.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "Image is too large. Please upload a smaller image (max 10MB)."},
	{appErrors.ErrRateLimited, http.StatusTooManyRequests, "Too many upload requests. Please try again later."},
}

// classifyError maps err onto a status and a client-safe message. An
// AppError's message takes precedence over the default for its status.
func classifyError(err error) (int, string) {
	status, message := http.StatusInternalServerError, ""
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			status, message = e.status, e.message
			break
		}
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	if message == "" {
		message = msgInternal
	}
	return status, message
}

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status, message := classifyError(err)
	logError(c, status, err)
	utils.ErrorResponse(c, status, message)
}

func logError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	if status < http.StatusInternalServerError {
		return
	}
	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
}

// invalidBody reports a bind failure. A body cut off by the size limit is
// reported as too large rather than malformed.
func invalidBody(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return appErrors.NewAppError("PAYLOAD_TOO_LARGE", "Request body too large",
			fmt.Errorf("body exceeds %d bytes: %w", maxBytesErr.Limit, appErrors.ErrPayloadTooLarge))
	}
	return appErrors.Validation("Invalid request body", err)
}
