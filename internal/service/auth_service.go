package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor used for the admin password hash
	BcryptCost = 10
)

var (
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrInvalidSession     = errors.New("invalid session token")
)

// SessionClaims are the JWT claims of an admin session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// AuthService is the shared-secret gate in front of the admin surface. There
// are no users or roles: one password, compared against a bcrypt hash, opens
// a session. Logout revokes the session's jti; revocations live in memory and
// expire with the token.
type AuthService struct {
	passwordHash  []byte
	sessionSecret []byte
	sessionExpiry time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewAuthService hashes the configured admin password and prepares the
// session signer.
func NewAuthService(adminPassword, sessionSecret string, sessionExpiry time.Duration) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		passwordHash:  hash,
		sessionSecret: []byte(sessionSecret),
		sessionExpiry: sessionExpiry,
		revoked:       make(map[string]time.Time),
	}, nil
}

// Login compares the submitted secret against the admin password and issues a
// signed session token on success.
func (s *AuthService) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.sessionExpiry)
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Logout revokes the session token. Unknown or malformed tokens are ignored;
// logging out is always a no-op at worst.
func (s *AuthService) Logout(tokenString string) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry := time.Now().Add(s.sessionExpiry)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	s.revoked[claims.ID] = expiry
	s.pruneLocked()
}

// Validate checks the token signature, expiry and revocation status.
func (s *AuthService) Validate(tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	if _, ok := s.revoked[claims.ID]; ok {
		return ErrInvalidSession
	}
	return nil
}

func (s *AuthService) parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// pruneLocked drops revocations whose tokens have expired anyway. Callers
// must hold the mutex.
func (s *AuthService) pruneLocked() {
	now := time.Now()
	for jti, expiry := range s.revoked {
		if now.After(expiry) {
			delete(s.revoked, jti)
		}
	}
}
