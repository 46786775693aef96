package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const middlewareSecret = "middleware-secret"

func signToken(t *testing.T, secret string, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := primitive.NewObjectID()

	router := gin.New()
	router.GET("/secure", AuthMiddleware(middlewareSecret), func(c *gin.Context) {
		id, err := currentUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"uid": id.Hex()})
	})

	tests := []struct {
		name        string
		authHeader  string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			authHeader:  "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header is missing",
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic abc123",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header format must be Bearer {token}",
		},
		{
			name:        "garbage token",
			authHeader:  "Bearer not.a.token",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "expired token",
			authHeader:  "Bearer " + signToken(t, middlewareSecret, userID.Hex(), time.Now().Add(-time.Hour)),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Token has expired",
		},
		{
			name:        "wrong secret",
			authHeader:  "Bearer " + signToken(t, "other-secret", userID.Hex(), time.Now().Add(time.Hour)),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token",
		},
		{
			name:        "missing uid claim",
			authHeader:  "Bearer " + signToken(t, middlewareSecret, "", time.Now().Add(time.Hour)),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token or missing claims",
		},
		{
			name:        "uid is not an object id",
			authHeader:  "Bearer " + signToken(t, middlewareSecret, "not-hex", time.Now().Add(time.Hour)),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid token or missing claims",
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, middlewareSecret, userID.Hex(), time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMessage)
			} else {
				assert.Contains(t, rec.Body.String(), userID.Hex())
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestLogger(zap.NewNop().Sugar()))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
