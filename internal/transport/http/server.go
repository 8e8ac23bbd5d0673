package http

import (
	"github.com/gin-gonic/gin"

	appsvc "docuchat/internal/app"
	"docuchat/internal/bootstrap"
	"docuchat/internal/transport/http/handler"
)

// NewRouter wires the HTTP surface onto the orchestrators built by the
// composition root.
func NewRouter(app *bootstrap.App, documentService *appsvc.DocumentService, chatService *appsvc.ChatService) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = app.Config.MaxUploadBytes()

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	documentHandler := handler.NewDocumentHandler(documentService, app.Stats, app.Config.MaxUploadBytes())
	chatHandler := handler.NewChatHandler(chatService)

	v1 := router.Group("/api/v1")
	v1.POST("/documents", documentHandler.Upload)
	v1.GET("/documents", documentHandler.List)
	v1.DELETE("/documents/:id", documentHandler.Delete)
	v1.POST("/chat", chatHandler.Ask)

	return router
}
