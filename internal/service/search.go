package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/repository"
)

const (
	searchSubject     = "search"
	searchResultLimit = 25
	minQueryLength    = 2
)

var (
	ErrSearchDisabled = errors.New("search is not configured")
	ErrWrongPassword  = errors.New("wrong search password")
	ErrInvalidToken   = errors.New("invalid search token")
	ErrQueryTooShort  = errors.New("query too short")
)

// SearchService implements the password-gated keyword search. The shared
// password unlocks a short-lived signed token carried in a cookie.
type SearchService struct {
	posts        repository.PostRepository
	passwordHash string
	jwtSecret    []byte
	tokenExpiry  time.Duration
}

func NewSearchService(
	posts repository.PostRepository,
	passwordHash, jwtSecret string,
	tokenExpiry time.Duration,
) *SearchService {
	return &SearchService{
		posts:        posts,
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenExpiry:  tokenExpiry,
	}
}

// Enabled reports whether a search password is configured.
func (s *SearchService) Enabled() bool {
	return s.passwordHash != ""
}

// Unlock verifies the shared password and mints a search token.
func (s *SearchService) Unlock(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrSearchDisabled
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
	if err != nil {
		return "", ErrWrongPassword
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   searchSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign search token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks a search token's signature, expiry and subject.
func (s *SearchService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != searchSubject {
		return ErrInvalidToken
	}
	return nil
}

// TokenExpiry is the lifetime of a freshly minted token.
func (s *SearchService) TokenExpiry() time.Duration {
	return s.tokenExpiry
}

// Search runs a case-insensitive keyword search over titles and content.
func (s *SearchService) Search(query string) ([]*model.Post, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return nil, ErrQueryTooShort
	}
	return s.posts.Search(query, searchResultLimit)
}
