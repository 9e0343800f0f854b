package medication

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *MedicationHandler, secured gin.HandlerFunc) {
	medicationGroup := r.Group("/medications", secured)
	{
		medicationGroup.GET("", handler.ListMedications)
		medicationGroup.POST("", handler.CreateMedication)
		medicationGroup.GET("/logs", handler.ListLogs)
		medicationGroup.POST("/:id/log", handler.RecordCompliance)
	}
}
