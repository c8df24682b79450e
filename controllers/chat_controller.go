package controllers

import (
	"log"
	"net/http"

	"github.com/ntai0404/map-excel-api-chat/models"
	"github.com/ntai0404/map-excel-api-chat/services"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		ChatService: chatService,
	}
}

// Chat handles the main chat endpoint: message + coordinates in, generated
// reply + nearest stores out.
func (c *ChatController) Chat(ctx *gin.Context) {
	var req models.ChatRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	response, err := c.ChatService.Chat(ctx.Request.Context(), req)
	if err != nil {
		if customErr, ok := err.(*utils.CustomError); ok {
			utils.ErrorResponse(ctx, customErr.StatusCode, customErr.Message)
			return
		}
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to process chat")
		return
	}

	// The frontend consumes this payload directly, no envelope.
	ctx.JSON(http.StatusOK, response)
}

// ChatWithHistory runs the same pipeline for an authenticated user and
// records both sides of the exchange in the room.
func (c *ChatController) ChatWithHistory(ctx *gin.Context) {
	var req models.ChatRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	userId, exists := ctx.Get("userId")
	if !exists {
		utils.ErrorResponse(ctx, http.StatusUnauthorized, "UserId is required")
		return
	}

	roomId := ctx.Param("roomId")
	if roomId == "" {
		utils.ErrorResponse(ctx, http.StatusBadRequest, "Room ID is required")
		return
	}

	if !c.ChatService.HistoryEnabled() {
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "Chat history is not configured")
		return
	}

	if err := c.ChatService.SaveChat(ctx.Request.Context(), userId.(string), req.Message, roomId, false); err != nil {
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to save chat")
		return
	}

	response, err := c.ChatService.Chat(ctx.Request.Context(), req)
	if err != nil {
		if customErr, ok := err.(*utils.CustomError); ok {
			utils.ErrorResponse(ctx, customErr.StatusCode, customErr.Message)
			return
		}
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to process chat")
		return
	}

	if err := c.ChatService.SaveChat(ctx.Request.Context(), userId.(string), response.Reply, roomId, true); err != nil {
		// The reply was already generated; losing one history row is not
		// worth failing the request over.
		log.Println("Failed to save assistant chat:", err)
	}

	ctx.JSON(http.StatusOK, response)
}
