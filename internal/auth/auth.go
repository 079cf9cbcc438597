// Package auth is a thin session layer over the local user registry.
// The rest of the application only ever consumes the authenticated user
// (name/email) from the request context; swapping this for a hosted
// identity provider would not touch any other package.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	appLog "chronofy/internal/log"
	"chronofy/internal/model"
	"chronofy/internal/storage"
)

type ctxKey struct{}

// ErrInvalidCredentials covers both unknown email and wrong password,
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// anonymous is the identity used when auth is disabled (no secret
// configured): a single-user local install.
var anonymous = model.User{ID: "local", Name: "Student"}

// Service manages the user registry and session tokens.
type Service struct {
	mu     sync.Mutex
	repo   storage.Repository
	secret []byte
	ttl    time.Duration
	users  []userRecord
}

// userRecord is the persisted form of a user; the password hash never
// leaves this package.
type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// NewService loads the user registry from repo. An empty secret
// disables authentication entirely.
func NewService(ctx context.Context, repo storage.Repository, secret string, ttl time.Duration) *Service {
	s := &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
	}
	loadUsers(ctx, repo, &s.users)
	return s
}

// Enabled reports whether sessions are enforced.
func (s *Service) Enabled() bool {
	return len(s.secret) > 0
}

// SignUp registers a new user and returns a session token.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.User{}, "", errors.New("email and password are required")
	}
	if name == "" {
		// Match the original behavior: derive a display name from the
		// email local part when none is given.
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", err
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return model.User{}, "", errors.New("email already registered")
		}
	}
	rec := userRecord{
		ID:           newUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	s.users = append(s.users, rec)
	s.persistLocked(ctx)
	s.mu.Unlock()

	token, err := s.issueToken(rec.ID)
	if err != nil {
		return model.User{}, "", err
	}
	appLog.Info("user signed up", "email", email)
	return rec.public(), token, nil
}

// LogIn verifies credentials and returns a session token.
func (s *Service) LogIn(ctx context.Context, email, password string) (model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	var rec userRecord
	found := false
	for _, u := range s.users {
		if u.Email == email {
			rec = u
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return model.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(rec.ID)
	if err != nil {
		return model.User{}, "", err
	}
	return rec.public(), token, nil
}

// UserByID resolves a user id from a verified token.
func (s *Service) UserByID(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.public(), true
		}
	}
	return model.User{}, false
}

// Middleware enforces a bearer session token and injects the user into
// the request context. With auth disabled it injects the anonymous
// local user instead.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), anonymous)))
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		userID, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		user, ok := s.UserByID(userID)
		if !ok {
			http.Error(w, "unknown user", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func withUser(ctx context.Context, u model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated user placed by Middleware.
func UserFromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(model.User)
	return u, ok
}

func (r userRecord) public() model.User {
	return model.User{ID: r.ID, Name: r.Name, Email: r.Email}
}

func loadUsers(ctx context.Context, repo storage.Repository, out *[]userRecord) {
	data, err := repo.Load(ctx, storage.KindUsers)
	if err != nil {
		appLog.Error("auth: load failed, starting empty", err)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := unmarshalUsers(data, out); err != nil {
		appLog.Error("auth: corrupt user registry, starting empty", err)
	}
}

func (s *Service) persistLocked(ctx context.Context) {
	data, err := marshalUsers(s.users)
	if err != nil {
		appLog.Error("auth: marshal failed", err)
		return
	}
	if err := s.repo.Save(ctx, storage.KindUsers, data); err != nil {
		appLog.Error("auth: save failed", err)
	}
}
