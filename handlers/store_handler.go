package handlers

import (
	"github.com/ntai0404/map-excel-api-chat/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterStoreRoutes(router *gin.RouterGroup, storeController *controllers.StoreController) {
	storeGroup := router.Group("/stores")
	{
		storeGroup.GET("", storeController.GetAllStores)
		storeGroup.GET("/nearby", storeController.GetNearbyStores)
	}
}
