package middleware

import (
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/util"
	"quiz_room_hub/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserLookup interface {
	FindByID(id uint) (*model.User, error)
}

// AuthMiddleware accepts a bearer access token and loads its active user.
func AuthMiddleware(secret string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == authHeader || tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseTokenOfType(tokenString, secret, util.AccessToken)
		if err != nil {
			logger.Log.Debug("Rejected access token", zap.Error(err))
			util.InvalidToken(c)
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			util.InvalidToken(c)
			c.Abort()
			return
		}

		util.SetAuthContext(c, claims, user)
		c.Next()
	}
}

// StaffMiddleware only lets staff accounts through.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.CurrentUser(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.IsStaff {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger writes one line per request through zap.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		}
		if claims := util.GetUserFromContext(c); claims != nil {
			fields = append(fields, zap.Uint("user_id", claims.UserID))
		}
		logger.Log.Debug("Request handled", fields...)
	}
}
