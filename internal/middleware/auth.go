package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/auth"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/constants"
)

// Secured validates the Authorization bearer token and resolves the
// calling user into the request context.
func Secured(authService auth.AuthService, users user.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			helper.SendError(c, http.StatusUnauthorized, errors.New("missing authorization header"), helper.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			helper.SendError(c, http.StatusUnauthorized, errors.New("authorization header must be a bearer token"), helper.ErrUnauthorized)
			return
		}

		phone, err := authService.VerifyToken(parts[1])
		if err != nil {
			helper.SendError(c, http.StatusUnauthorized, err, helper.ErrUnauthorized)
			return
		}

		current, err := users.FindByPhone(c, phone)
		if err != nil {
			helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
			return
		}
		if current == nil {
			helper.SendError(c, http.StatusUnauthorized, errors.New("user no longer exists"), helper.ErrUnauthorized)
			return
		}

		c.Set(constants.CurrentUser, current)
		c.Set(constants.UserID, current.ID)
		c.Set(constants.UserPhone, current.Phone)
		c.Next()
	}
}
