package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Lukiyanto/cisaroni-news/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// The four error kinds the core distinguishes. Handlers map them onto HTTP
// statuses; nothing retries automatically.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func respondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

func respondConflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"error": msg})
}

// respondInternal logs the real error and keeps the response generic; DB and
// SDK error strings never reach clients.
func respondInternal(c *gin.Context, err error) {
	log.Log.WithError(err).Error("internal server error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondBindingError turns a ShouldBind error into either a 400 for
// malformed payloads or a 422 with per-field messages for validation
// failures.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func respondFieldError(c *gin.Context, field, msg string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{field: msg}})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// isNotFound unifies the gorm sentinel with ours.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}
