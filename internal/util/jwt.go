package util

import (
	"errors"
	"quiz_room_hub/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const (
	contextClaimsKey = "user"
	contextUserKey   = "currentUser"
)

type Claims struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	IsTeacher bool      `json:"is_teacher"`
	IsStaff   bool      `json:"is_staff"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

func GenerateJWT(user *model.User, tokenType TokenType, secret string, expiration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IsTeacher: user.IsTeacher,
		IsStaff:   user.IsStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        model.GenerateUUID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ParseTokenOfType rejects tokens of the wrong kind, so a refresh token can
// never authenticate a request.
func ParseTokenOfType(tokenString, secret string, tokenType TokenType) (*Claims, error) {
	claims, err := ParseJWT(tokenString, secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func SetAuthContext(c *gin.Context, claims *Claims, user *model.User) {
	c.Set(contextClaimsKey, claims)
	c.Set(contextUserKey, user)
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get(contextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUser returns the account loaded by the auth middleware.
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
