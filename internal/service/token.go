package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// RejoinClaims binds a stable student identity to one room. Presenting
// the token on a later join-room restores the student's record there.
// This is session continuity, not identity authentication.
type RejoinClaims struct {
	RoomCode  string `json:"roomCode"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and validates room-scoped rejoin tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a rejoin token for a student in a room.
func (s *TokenService) Issue(roomCode, studentID, name string) (string, error) {
	claims := &RejoinClaims{
		RoomCode:  roomCode,
		StudentID: studentID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // room sessions are short-lived
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a rejoin token and returns its claims.
func (s *TokenService) Validate(tokenString string) (*RejoinClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RejoinClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*RejoinClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
