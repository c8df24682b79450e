package middleware

import (
	"net/http"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/config/environment"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the guest session token and sets userId on the
// context for the history routes.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization token is required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(environment.GetSessionSecret()), nil
		})
		if err != nil || !token.Valid {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		userId, ok := claims["sub"].(string)
		if !ok || userId == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token subject")
			return
		}

		c.Set("userId", userId)
		c.Next()
	}
}
