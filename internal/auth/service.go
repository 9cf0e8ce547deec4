package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cvaz1306/nexora/internal/typeid"
)

var ErrInvalidKey = errors.New("invalid access key")

// Service gates board sessions behind an optional shared access key.
// When a key is configured it is bcrypt-hashed once at startup and every
// session request is compared against the hash; valid requests receive a
// short-lived JWT that the websocket endpoint checks.
type Service struct {
	jwtSecret []byte
	keyHash   []byte // nil when access is open
}

func NewService(jwtSecret, accessKey string) (*Service, error) {
	s := &Service{jwtSecret: []byte(jwtSecret)}
	if accessKey != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(accessKey), 12)
		if err != nil {
			return nil, fmt.Errorf("hash access key: %w", err)
		}
		s.keyHash = hash
	}
	return s, nil
}

// Required reports whether clients must present an access key.
func (s *Service) Required() bool {
	return s.keyHash != nil
}

type SessionResult struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}

// CreateSession validates the access key and issues a session token.
func (s *Service) CreateSession(key string) (*SessionResult, error) {
	if s.keyHash != nil {
		if err := bcrypt.CompareHashAndPassword(s.keyHash, []byte(key)); err != nil {
			return nil, ErrInvalidKey
		}
	}

	sessionID := typeid.NewSessionID()
	token, err := s.issueToken(sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Token: token, SessionID: sessionID}, nil
}

// ValidateToken parses and verifies a session token, returning the
// session id it was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sessionID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}

	return sessionID, nil
}

func (s *Service) issueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
