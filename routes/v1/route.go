package route

import (
	"github.com/ntai0404/map-excel-api-chat/controllers"
	"github.com/ntai0404/map-excel-api-chat/handlers"
	"github.com/ntai0404/map-excel-api-chat/models"
	"github.com/ntai0404/map-excel-api-chat/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, catalog *models.Catalog) {
	provider := services.NewChatProvider()

	chatController := controllers.NewChatController(services.NewChatService(catalog, provider))
	roomController := controllers.NewRoomController(services.NewRoomService())
	storeController := controllers.NewStoreController(services.NewStoreService(catalog))
	authController := controllers.NewAuthController()

	v1Routes := router.Group("/v1")
	{
		handlers.RegisterAuthRoutes(v1Routes, authController)
		handlers.RegisterChatRoutes(v1Routes, chatController, roomController)
		handlers.RegisterStoreRoutes(v1Routes, storeController)
	}
}
