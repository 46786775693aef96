package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trainlog/workout-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Context keys set by the middleware below.
const (
	ContextUserIDKey    = "userID"
	ContextRequestIDKey = "requestID"
)

// jwtClaims mirrors the payload issued by the auth service.
type jwtClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// On success the authenticated user's ObjectID is stored in the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, domain.NewAuthenticationError("Authorization header is missing"))
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			respondError(c, domain.NewAuthenticationError("Authorization header format must be Bearer {token}"))
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				respondError(c, domain.NewAuthenticationError("Token has expired"))
			} else {
				respondError(c, domain.NewAuthenticationError("Invalid token"))
			}
			return
		}
		if !token.Valid || claims.UserID == "" {
			respondError(c, domain.NewAuthenticationError("Invalid token or missing claims"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			respondError(c, domain.NewAuthenticationError("Invalid token or missing claims"))
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// currentUserID reads the authenticated user's id set by AuthMiddleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}

// RequestLogger tags every request with a generated id and logs method,
// path, status and duration through the given logger.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		c.Set(ContextRequestIDKey, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Infow("request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", duration,
		)
	}
}
