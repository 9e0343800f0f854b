package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *AuthHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/check-user", handler.CheckUser)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/register", handler.Register)
	}
}
