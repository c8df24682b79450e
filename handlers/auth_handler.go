package handlers

import (
	"github.com/ntai0404/map-excel-api-chat/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/session", authController.CreateSession)
	}
}
