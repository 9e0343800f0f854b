package nominee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *NomineeHandler, secured gin.HandlerFunc) {
	nomineeGroup := r.Group("/nominees", secured)
	{
		nomineeGroup.GET("", handler.ListNominees)
		nomineeGroup.POST("", handler.CreateNominee)
		nomineeGroup.DELETE("/:id", handler.DeleteNominee)
	}
}
