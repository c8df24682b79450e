package controllers

import (
	"net/http"
	"time"

	"github.com/ntai0404/map-excel-api-chat/config/environment"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// CreateSession issues a guest session token so the frontend can keep chat
// history without a full login flow.
func (c *AuthController) CreateSession(ctx *gin.Context) {
	userId := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": userId,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(environment.GetSessionSecret()))
	if err != nil {
		utils.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to create session")
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Session created successfully", gin.H{
		"user_id": userId,
		"token":   signed,
	})
}
