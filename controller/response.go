package controller

import (
	"errors"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"greenroute-backend/utils/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, models.APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, code int, message, errType, details, field string) {
	c.JSON(code, models.APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error: &models.APIError{
			Type:    errType,
			Details: details,
			Field:   field,
		},
	})
}

// respondServiceError maps service errors onto HTTP statuses
func respondServiceError(c *gin.Context, log logger.Logger, message string, err error) {
	var verr *services.ValidationError
	var terr *services.TransitionError

	switch {
	case errors.As(err, &terr):
		respondError(c, http.StatusConflict, message, "InvalidTransition", terr.Error(), "status")
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, message, "ValidationError", verr.Message, verr.Field)
	case errors.Is(err, services.ErrJobNotFound):
		respondError(c, http.StatusNotFound, message, "NotFound", err.Error(), "")
	case errors.Is(err, services.ErrPersistence):
		log.Errorf("%s: %v", message, err)
		respondError(c, http.StatusBadGateway, message, "PersistenceFailure", err.Error(), "")
	default:
		log.Errorf("%s: %v", message, err)
		respondError(c, http.StatusInternalServerError, message, "InternalError", err.Error(), "")
	}
}

// claimsFrom reads the token claims set by the auth middleware
func claimsFrom(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get("jwt_claims")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Authentication required", "AuthenticationError", "User not authenticated", "")
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid token claims", "TokenError", "Invalid token structure", "")
		return nil, false
	}
	return claims, true
}

func formatValidationErrors(err error) (string, string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), ""
	}

	var messages []string
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fieldError.Field()+" is required")
		case "min":
			messages = append(messages, fieldError.Field()+" must be at least "+fieldError.Param()+" characters/items")
		case "max":
			messages = append(messages, fieldError.Field()+" must be at most "+fieldError.Param()+" characters/items")
		case "oneof":
			messages = append(messages, fieldError.Field()+" must be one of: "+strings.ReplaceAll(fieldError.Param(), " ", ", "))
		case "email":
			messages = append(messages, fieldError.Field()+" must be a valid email address")
		case "e164":
			messages = append(messages, fieldError.Field()+" must be a phone number in international format")
		default:
			messages = append(messages, fieldError.Field()+" is invalid")
		}
	}
	return strings.Join(messages, "; "), validationErrors[0].Field()
}

// bind decodes the JSON body into req and runs struct validation
func bind(c *gin.Context, v *validator.Validate, log logger.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debugf("Failed to bind JSON: %v", err)
		respondError(c, http.StatusBadRequest, "Invalid request", "ValidationError", err.Error(), "")
		return false
	}
	if err := v.Struct(req); err != nil {
		details, field := formatValidationErrors(err)
		respondError(c, http.StatusBadRequest, "Validation failed", "ValidationError", details, field)
		return false
	}
	return true
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date", "ValidationError", name+" must be in YYYY-MM-DD format", name)
		return time.Time{}, false
	}
	return d, true
}
