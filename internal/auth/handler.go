package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
)

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) CheckUser(c *gin.Context) {

	var req CheckUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	exists, err := h.authService.CheckUser(c, req.Phone)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, CheckUserResponse{Exists: exists})
}

func (h *AuthHandler) Login(c *gin.Context) {

	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	token, err := h.authService.Login(c, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOTP):
			helper.SendError(c, http.StatusUnauthorized, err, helper.ErrUnauthorized)
		case errors.Is(err, ErrUserNotFound):
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
		default:
			helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		}
		return
	}

	helper.SendSuccess(c, http.StatusOK, token)
}

func (h *AuthHandler) Register(c *gin.Context) {

	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	token, err := h.authService.Register(c, &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
			return
		}
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, token)
}
