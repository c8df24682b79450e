package controllers

import (
	"net/http"
	"strconv"

	"github.com/ntai0404/map-excel-api-chat/services"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/gin-gonic/gin"
)

type StoreController struct {
	StoreService *services.StoreService
}

func NewStoreController(storeService *services.StoreService) *StoreController {
	return &StoreController{
		StoreService: storeService,
	}
}

func (c *StoreController) GetAllStores(ctx *gin.Context) {
	stores := c.StoreService.GetAllStores()
	utils.SuccessResponse(ctx, http.StatusOK, "Stores fetched successfully", stores)
}

// GetNearbyStores returns stores within radius (km) of lat/lng, sorted by
// distance.
func (c *StoreController) GetNearbyStores(ctx *gin.Context) {
	latitude, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Invalid latitude")
		return
	}
	longitude, err := strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Invalid longitude")
		return
	}

	radius := 3.0
	if raw := ctx.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			utils.ErrorResponse(ctx, http.StatusBadRequest, "Invalid radius")
			return
		}
	}

	stores := c.StoreService.GetNearbyStores(latitude, longitude, radius)
	utils.SuccessResponse(ctx, http.StatusOK, "Nearby stores fetched successfully", stores)
}
