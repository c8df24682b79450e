package controllers

import (
	"net/http"

	"github.com/ntai0404/map-excel-api-chat/services"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomService *services.RoomService
}

func NewRoomController(roomService *services.RoomService) *RoomController {
	return &RoomController{
		RoomService: roomService,
	}
}

type createRoomRequest struct {
	Title string `json:"title"`
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	userId, exists := ctx.Get("userId")
	if !exists {
		utils.ErrorResponse(ctx, http.StatusUnauthorized, "UserId is required")
		return
	}
	if c.RoomService.FirestoreClient == nil {
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "Chat history is not configured")
		return
	}

	var req createRoomRequest
	_ = ctx.ShouldBindJSON(&req)

	room, err := c.RoomService.SaveRoom(ctx.Request.Context(), userId.(string), req.Title)
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to create room")
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Room created successfully", room)
}

func (c *RoomController) GetAllRooms(ctx *gin.Context) {
	userId, exists := ctx.Get("userId")
	if !exists {
		utils.ErrorResponse(ctx, http.StatusUnauthorized, "UserId is required")
		return
	}
	if c.RoomService.FirestoreClient == nil {
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "Chat history is not configured")
		return
	}

	rooms, err := c.RoomService.GetRooms(ctx.Request.Context(), userId.(string))
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Rooms fetched successfully", rooms)
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	userId, exists := ctx.Get("userId")
	if !exists {
		utils.ErrorResponse(ctx, http.StatusUnauthorized, "UserId is required")
		return
	}
	if c.RoomService.FirestoreClient == nil {
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "Chat history is not configured")
		return
	}

	roomId := ctx.Param("roomId")
	if roomId == "" {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Room ID is required")
		return
	}

	room, err := c.RoomService.GetRoomWithChats(ctx.Request.Context(), userId.(string), roomId)
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusNotFound, "Room not found")
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Room fetched successfully", room)
}
