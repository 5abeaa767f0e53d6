package service

import (
	"errors"
	"time"

	apperrors "restaurant-system/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// JwtCustomClaim - токен администратора. Login дублирует Subject для удобства.
type JwtCustomClaim struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(login string) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	SecretKey      string
	AccessTokenExp time.Duration
	now            func() time.Time
}

func NewJWTService(secretKey string, accessTokenExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:      secretKey,
		AccessTokenExp: accessTokenExp,
		now:            time.Now,
	}
}

func (service *jwtService) GenerateToken(login string) (string, error) {
	now := service.now()
	claims := &JwtCustomClaim{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.AccessTokenExp)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(service.SecretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.AccessTokenExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, apperrors.ErrInvalidSigningMethod) {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.Login == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
