package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/constants"
)

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CurrentUser pulls the user resolved by the auth middleware out of the
// gin context.
func CurrentUser(c *gin.Context) *User {
	value, exists := c.Get(constants.CurrentUser)
	if !exists {
		return nil
	}
	user, ok := value.(*User)
	if !ok {
		return nil
	}
	return user
}

func (h *UserHandler) GetMe(c *gin.Context) {

	user := CurrentUser(c)
	if user == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	helper.SendSuccess(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {

	user := CurrentUser(c)
	if user == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	updated, err := h.userService.UpdateProfile(c, user.ID, &req)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, updated)
}
