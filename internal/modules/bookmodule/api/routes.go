package api

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the book routes on a group rooted at /api/books
func RegisterRoutes(group *gin.RouterGroup, handler *Handler) {
	group.GET("", handler.ListBooks)
	group.POST("", handler.CreateBook)
	group.GET("/:id", handler.GetBook)
	group.PATCH("/:id", handler.UpdateBook)
	group.DELETE("/:id", handler.DeleteBook)
}
