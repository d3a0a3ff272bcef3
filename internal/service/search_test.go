package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-at-least-32-characters!!"

func newTestSearchService(t *testing.T, repo *fakePostRepo) *SearchService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewSearchService(repo, string(hash), testJWTSecret, time.Hour)
}

func TestUnlockWithCorrectPassword(t *testing.T) {
	s := newTestSearchService(t, &fakePostRepo{})

	token, err := s.Unlock("open sesame")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if token == "" {
		t.Fatal("got empty token")
	}

	err = s.ValidateToken(token)
	if err != nil {
		t.Errorf("fresh token rejected: %v", err)
	}
}

func TestUnlockWithWrongPassword(t *testing.T) {
	s := newTestSearchService(t, &fakePostRepo{})

	_, err := s.Unlock("not the password")
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("got error %v, want ErrWrongPassword", err)
	}
}

func TestUnlockWhenDisabled(t *testing.T) {
	s := NewSearchService(&fakePostRepo{}, "", testJWTSecret, time.Hour)

	if s.Enabled() {
		t.Error("service without a password hash should be disabled")
	}
	_, err := s.Unlock("anything")
	if !errors.Is(err, ErrSearchDisabled) {
		t.Errorf("got error %v, want ErrSearchDisabled", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := newTestSearchService(t, &fakePostRepo{})

	err := s.ValidateToken("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got error %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := &fakePostRepo{}
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	s := NewSearchService(repo, string(hash), testJWTSecret, -time.Minute)

	token, err := s.Unlock("open sesame")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	err = s.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got error %v, want ErrInvalidToken for an expired token", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	s := newTestSearchService(t, &fakePostRepo{})
	other := NewSearchService(&fakePostRepo{}, s.passwordHash, "a-different-secret-32-characters!!!", time.Hour)

	token, err := other.Unlock("open sesame")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	err = s.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got error %v, want ErrInvalidToken for a foreign token", err)
	}
}

func TestSearchRejectsShortQueries(t *testing.T) {
	s := newTestSearchService(t, &fakePostRepo{})

	_, err := s.Search(" a ")
	if !errors.Is(err, ErrQueryTooShort) {
		t.Errorf("got error %v, want ErrQueryTooShort", err)
	}
}

func TestSearchTrimsAndLimits(t *testing.T) {
	repo := &fakePostRepo{}
	s := newTestSearchService(t, repo)

	_, err := s.Search("  django  ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if repo.searchQuery != "django" {
		t.Errorf("got query %q, want %q", repo.searchQuery, "django")
	}
	if repo.searchLimit != searchResultLimit {
		t.Errorf("got limit %d, want %d", repo.searchLimit, searchResultLimit)
	}
}
