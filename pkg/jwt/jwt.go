package jwt

import (
	"errors"
	"time"

	"forpharma-console/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identify a console staff member. The platform backend owns the user, so the
// ids are its opaque strings.
type Claims struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	TokenType      TokenType `json:"token_type"`
	TokenID        string    `json:"token_id"`
	jwt.RegisteredClaims
}

// Subject is the identity carried by both token types.
type Subject struct {
	UserID         string
	Email          string
	OrganizationID string
	Role           string
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(subject Subject) (string, string, error) {
	return s.generate(subject, AccessToken, s.config.AccessExpiry)
}

func (s *JWTService) GenerateRefreshToken(subject Subject) (string, string, error) {
	return s.generate(subject, RefreshToken, s.config.RefreshExpiry)
}

func (s *JWTService) generate(subject Subject, tokenType TokenType, expiry time.Duration) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	claims := Claims{
		UserID:         subject.UserID,
		Email:          subject.Email,
		OrganizationID: subject.OrganizationID,
		Role:           subject.Role,
		TokenType:      tokenType,
		TokenID:        tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (c *Claims) Subject() Subject {
	return Subject{
		UserID:         c.UserID,
		Email:          c.Email,
		OrganizationID: c.OrganizationID,
		Role:           c.Role,
	}
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}

func (s *JWTService) GetRefreshExpiry() time.Duration {
	return s.config.RefreshExpiry
}
