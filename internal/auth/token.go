// Package auth 驗證身分提供者簽發的 JWT，並為訪客簽發同格式的 token。
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-wine-tasting/config"
	"go-wine-tasting/internal/model"
	"go-wine-tasting/internal/service"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims 身分提供者與訪客 token 共用的 claims
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Guest bool   `json:"guest,omitempty"`
}

type TokenManager struct {
	secret   []byte
	issuer   string
	guestTTL time.Duration
	now      func() time.Time
}

func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	ttl := cfg.GuestTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   strings.TrimSpace(cfg.Issuer),
		guestTTL: ttl,
		now:      time.Now,
	}, nil
}

// WithClock 替換時間來源
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Verify 驗證 HS256 token 並轉成 Identity；subject 必須是 UUID
func (m *TokenManager) Verify(token string) (service.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return service.Identity{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return service.Identity{}, fmt.Errorf("%w: invalid subject", apperrors.ErrUnauthorized)
	}

	identity := service.Identity{
		UserID:  userID,
		Name:    claims.Name,
		IsGuest: claims.Guest,
	}
	if claims.Email != "" {
		email := claims.Email
		identity.Email = &email
	}
	return identity, nil
}

// Issue 為使用者簽發 token，訪客與測試環境使用
func (m *TokenManager) Issue(user *model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.guestTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		Name:  user.Name,
		Guest: user.IsGuest,
	}
	if user.Email != nil {
		claims.Email = *user.Email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
