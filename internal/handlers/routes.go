package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterFeedRoutes mounts the feed endpoints on rg. auth guards the
// upload URL and create routes.
func RegisterFeedRoutes(rg *gin.RouterGroup, h *Handlers, auth gin.HandlerFunc) {
	rg.GET("", h.ListFeed)
	rg.GET("/", h.ListFeed)
	rg.GET("/signed-url/:fileName", auth, h.GetSignedUploadURL)
	rg.GET("/:id", h.GetFeedItem)
	rg.POST("", auth, h.CreateFeedItem)
	rg.POST("/", auth, h.CreateFeedItem)
}
