package handlers

import (
	"github.com/ntai0404/map-excel-api-chat/controllers"
	"github.com/ntai0404/map-excel-api-chat/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(router *gin.RouterGroup, chatController *controllers.ChatController, roomController *controllers.RoomController) {
	router.POST("/chat", chatController.Chat)

	roomGroup := router.Group("/rooms")
	{
		roomGroup.POST("", middleware.AuthMiddleware(), roomController.CreateRoom)
		roomGroup.GET("", middleware.AuthMiddleware(), roomController.GetAllRooms)
		roomGroup.GET("/:roomId", middleware.AuthMiddleware(), roomController.GetRoom)
		roomGroup.POST("/:roomId/chat", middleware.AuthMiddleware(), chatController.ChatWithHistory)
	}
}
