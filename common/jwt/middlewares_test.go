package jwt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-service/common/apperr"
	"chat-service/common/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter() *gin.Engine {
	auth := CreateAuthorization(false, "", testSecret, zap.NewNop())
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	router.Use(auth.JwtAuthorizationHandlerGin)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func getWithToken(router *gin.Engine, token string) (*httptest.ResponseRecorder, middleware.ErrorResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	var body middleware.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestValidTokenPasses(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w, _ := getWithToken(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingTokenRejected(t *testing.T) {
	router := newProtectedRouter()
	w, body := getWithToken(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperr.CodeAuthentication, body.Code)
}

func TestMalformedTokenRejected(t *testing.T) {
	router := newProtectedRouter()
	w, body := getWithToken(router, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.CodeInvalidToken, body.Code)
}

func TestBadSignatureRejected(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w, body := getWithToken(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.CodeInvalidToken, body.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	router := newProtectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	w, body := getWithToken(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.CodeTokenExpired, body.Code)
}

func TestParseJWTPayloadGin(t *testing.T) {
	auth := CreateAuthorization(false, "", testSecret, zap.NewNop())
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	claims, err := auth.ParseJWTPayloadGin(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
}
