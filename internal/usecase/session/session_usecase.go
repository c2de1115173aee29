package session

import (
	"fmt"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UseCase issues and validates anonymous device sessions. There is no
// account system: a session is just a random id signed into a token, enough
// to rate-limit and correlate a device's requests.
type UseCase struct {
	secret    string
	expiryDay int
}

func NewUseCase(secret string, expiryDay int) *UseCase {
	if expiryDay <= 0 {
		expiryDay = 30
	}
	return &UseCase{secret: secret, expiryDay: expiryDay}
}

// SessionResponse is returned when a new session is opened.
type SessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create opens a new anonymous session.
func (uc *UseCase) Create() (*SessionResponse, error) {
	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(time.Duration(uc.expiryDay) * 24 * time.Hour)

	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &SessionResponse{
		Token:     signed,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate parses a session token and returns its session id.
func (uc *UseCase) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.secret), nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", domain.ErrInvalidSession
	}
	return sid, nil
}
