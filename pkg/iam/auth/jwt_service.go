package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID    kernel.UserID   `json:"uid"`
	Email     kernel.Email    `json:"email"`
	FullName  kernel.FullName `json:"name"`
	Role      Role            `json:"role"`
	TokenID   string          `json:"-"`
	ExpiresAt time.Time       `json:"-"`
}

// Profile rebuilds the user profile embedded in the token
func (c *TokenClaims) Profile() UserProfile {
	return UserProfile{
		ID:       c.UserID,
		Email:    c.Email,
		FullName: c.FullName,
		Role:     c.Role,
	}
}

type jwtClaims struct {
	Email    string `json:"email"`
	FullName string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 access tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ TokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(user UserProfile) (string, *TokenClaims, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	tokenID := uuid.NewString()

	claims := jwtClaims{
		Email:    user.Email.String(),
		FullName: user.FullName.String(),
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	return token, &TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken().WithDetail("reason", "expired")
		}
		return nil, ErrInvalidToken().WithCause(err)
	}

	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken().WithDetail("reason", "incomplete claims")
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Email:     kernel.Email(claims.Email),
		FullName:  kernel.FullName(claims.FullName),
		Role:      Role(claims.Role),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
