package api

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the place routes on a group rooted at /api/places
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	group.GET("", handler.ListPlaces)
	group.POST("", handler.CreatePlace)
	group.GET("/:id", handler.GetPlace)
	group.PATCH("/:id", handler.UpdatePlace)
	group.DELETE("/:id", handler.DeletePlace)
}
