package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/certgen/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const DefaultTokenTTL = 24 * time.Hour

type JWT struct {
	logger    *zap.SugaredLogger
	jwtSecret string
	ttl       time.Duration
}

type JWTInterface interface {
	GenerateAccessToken(payload JWTPayload) (string, error)
	VerifyJwtToken(token string) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ttl := cfg.TOKEN_TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &JWT{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
		ttl:       ttl,
	}
}

// JWTPayload identifies the user and the college every request is scoped to.
type JWTPayload struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	College     string `json:"college"`
	CollegeName string `json:"collegeName"`
	Role        string `json:"role"`
}

type JWTClaims struct {
	JWTPayload
	jwt.RegisteredClaims
}

func (j JWT) GenerateAccessToken(payload JWTPayload) (string, error) {
	j.logger.Debugf("Generate access token with payload: %v", payload)

	now := time.Now()
	claims := JWTClaims{
		JWTPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (j JWT) VerifyJwtToken(token string) (*JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.jwtSecret), nil
	})
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, errors.New("jwt token is not valid")
	}

	if claims.UserID == "" || claims.College == "" {
		return nil, errors.New("invalid token: user or college is missing")
	}

	return claims, nil
}
