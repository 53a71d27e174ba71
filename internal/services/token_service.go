package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"subsmanager-miniapp/internal/config"
	"subsmanager-miniapp/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token is expired")
	ErrInvalidIssuer = errors.New("invalid issuer")
	ErrEmptyToken    = errors.New("empty token")
)

// TokenService signs the session cookie once the host identity was verified,
// so later requests need not carry the init data.
type TokenService struct {
	config.SessionConfig
	now func() time.Time
}

// NewTokenService creates a new token service from session configuration
func NewTokenService(sessionConfig *config.SessionConfig) TokenServiceInterface {
	return &TokenService{
		SessionConfig: *sessionConfig,
		now:           time.Now,
	}
}

// Issue signs a session token for user
func (ts *TokenService) Issue(user models.HostUser) (string, time.Time, error) {
	if user.ID <= 0 {
		return "", time.Time{}, errors.New("user id must be positive")
	}

	now := ts.now()
	expiresAt := now.Add(ts.TokenDuration)

	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserID:    user.ID,
		FirstName: user.FirstName,
		Source:    user.Source,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(ts.PrivateKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate verifies the signature, expiry and issuer of a session token
func (ts *TokenService) Validate(tokenString string) (*models.SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, ts.keyFunc,
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return nil, ts.mapTokenError(err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != ts.Issuer {
		return nil, ErrInvalidIssuer
	}
	if claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return ts.PublicKey, nil
}

func (ts *TokenService) mapTokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
