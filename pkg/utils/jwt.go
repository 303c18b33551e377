package utils

import (
	"errors"
	"strconv"
	"time"

	"trailblazer/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingClaims = errors.New("token is missing required claims")

// GenerateToken 生成JWT Token，claims 仅包含 sub / exp / iat
func GenerateToken(userID uint) (string, time.Time, error) {
	cfg := config.GlobalConfig.JWT
	now := time.Now()
	expireTime := now.Add(time.Duration(cfg.ExpireMinutes) * time.Minute)

	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return "", time.Time{}, jwt.ErrTokenUnverifiable
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(expireTime),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expireTime, nil
}

// ParseToken 验证JWT Token，只接受配置的签名算法
func ParseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	cfg := config.GlobalConfig.JWT
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{cfg.Algorithm}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

// SubjectID 将 sub 解析为用户ID
func SubjectID(claims *jwt.RegisteredClaims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrMissingClaims
	}
	return uint(id), nil
}
