package jwt

import (
	"errors"
	"strings"

	"chat-service/common/apperr"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type Authorization struct {
	jwkAuthEnabled bool
	jwkUrl         string
	jwks           *keyfunc.JWKS
	secret         []byte
	log            *zap.Logger
}

type AuthorizationInterface interface {
	UpdateJwks()
	JwtAuthorizationHandlerGin(c *gin.Context)
	ParseJWTPayloadGin(c *gin.Context) (result jwt.MapClaims, err error)
}

// CreateAuthorization builds the JWT middleware. With jwkAuthEnabled the
// signing keys come from the JWKS endpoint; otherwise the shared secret is
// used (local and test deployments).
func CreateAuthorization(jwkAuthEnabled bool, jwkUrl string, secret string, logger *zap.Logger) (auth *Authorization) {
	auth = &Authorization{
		jwkAuthEnabled: jwkAuthEnabled,
		jwkUrl:         jwkUrl,
		jwks:           nil,
		secret:         []byte(secret),
		log:            logger,
	}
	if jwkAuthEnabled {
		auth.UpdateJwks()
	}
	return
}

func (auth *Authorization) UpdateJwks() {
	if len(auth.jwkUrl) == 0 {
		auth.log.Fatal("Cannot retrieve JWK before providing its URL")
	}
	var err error = nil
	auth.jwks, err = keyfunc.Get(auth.jwkUrl, keyfunc.Options{})
	auth.log.Info("Updating JWKs...")
	if err != nil {
		auth.log.Warn("Failed to get the JWKS from the given URL", zap.Any("error", err))
	}
}

func (auth *Authorization) keyfunc() jwt.Keyfunc {
	if auth.jwkAuthEnabled {
		return auth.jwks.Keyfunc
	}
	return func(token *jwt.Token) (interface{}, error) {
		return auth.secret, nil
	}
}

// JwtAuthorizationHandlerGin protects a route group. Rejections are recorded
// on the context for the error handler instead of being written here, so the
// client always sees the normalized envelope.
func (auth *Authorization) JwtAuthorizationHandlerGin(c *gin.Context) {
	tokenStr := c.GetHeader("Authorization")
	tokenStr = strings.Replace(tokenStr, "Bearer ", "", -1)
	if tokenStr == "" {
		_ = c.Error(apperr.NewAuthenticationError("missing bearer token"))
		c.Abort()
		return
	}
	jwksPulled := false
	for {
		token, err := jwt.Parse(tokenStr, auth.keyfunc())
		if token != nil && token.Valid {
			c.Next()
			return
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) && auth.jwkAuthEnabled && !jwksPulled {
			//JWKS might be outdated, retry once after refreshing it
			jwksPulled = true
			auth.UpdateJwks()
			continue
		}
		auth.log.Info("Rejected token", zap.String("trace-id", c.GetHeader("trace-id")), zap.Any("error", err))
		_ = c.Error(err)
		c.Abort()
		return
	}
}

func (auth *Authorization) ParseJWTPayloadGin(c *gin.Context) (result jwt.MapClaims, err error) {
	tokenStr := c.GetHeader("Authorization")
	tokenStr = strings.Replace(tokenStr, "Bearer ", "", -1)
	token, err := jwt.Parse(tokenStr, auth.keyfunc())
	if token == nil || !token.Valid {
		return result, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return result, apperr.NewAuthenticationError("unsupported token claims")
	}
	return claims, nil
}
