package emergency

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *AlertHandler, secured gin.HandlerFunc) {
	emergencyGroup := r.Group("/emergency", secured)
	{
		emergencyGroup.GET("/active", handler.GetActive)
		emergencyGroup.POST("", handler.Trigger)
		emergencyGroup.POST("/:id/resolve", handler.Resolve)
	}
}
