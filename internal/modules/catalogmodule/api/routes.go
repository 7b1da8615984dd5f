package api

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the tag routes on a group rooted at /api/tags
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	group.GET("", handler.ListTags)
}
