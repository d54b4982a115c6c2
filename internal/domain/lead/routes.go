package lead

import "github.com/gin-gonic/gin"

// RegisterRoutes registers lead routes (all require authentication)
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.ListLeads)
		leads.POST("", handler.CreateLead)
		leads.GET("/stats", handler.GetStats)
		leads.GET("/export", handler.ExportLeads)
		leads.POST("/import", handler.ImportLeads)
		leads.GET("/:id", handler.GetLead)
		leads.PUT("/:id", handler.UpdateLead)
		leads.DELETE("/:id", handler.DeleteLead)
	}
}
