package user

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *UserHandler, secured gin.HandlerFunc) {
	userGroup := r.Group("/users", secured)
	{
		userGroup.GET("/me", handler.GetMe)
		userGroup.PUT("/me", handler.UpdateMe)
	}
}
