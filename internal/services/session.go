package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"tienda/internal/domain"
)

// Durable storage keys for the session pair. Both are written on login and
// cleared together on logout.
const (
	keyToken = "auth_token"
	keyUser  = "auth_user"
)

// Authenticator is the external login collaborator. The production endpoint
// is not finalized upstream, so the wiring stays behind this interface.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (domain.User, string, error)
}

// RegistrationForm is the profile sent to the account-creation collaborator.
type RegistrationForm struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Registrar is the external account-creation collaborator. Registration does
// not establish a session; login is a separate step.
type Registrar interface {
	Register(ctx context.Context, profile RegistrationForm) (domain.User, error)
}

// Verifier revalidates a rehydrated session against the backend. The
// storefront currently trusts stored sessions as-is (TrustingVerifier); a
// real verification call can be swapped in without touching callers.
type Verifier interface {
	Verify(ctx context.Context, token string, user domain.User) error
}

// TrustingVerifier accepts any stored session without asking the backend.
// This mirrors the storefront's known-insecure rehydrate behavior.
type TrustingVerifier struct{}

func (TrustingVerifier) Verify(context.Context, string, domain.User) error { return nil }

// KV is the durable key-value collaborator the session is persisted to.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// LoginResult is the structured outcome of a login attempt. Failures never
// escape as panics or raw errors past the session boundary.
type LoginResult struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

type RegisterResult struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SessionStore owns the authenticated user and token for one browser
// session. User and token are either both present or both absent.
type SessionStore struct {
	mu    sync.Mutex
	user  *domain.User
	token string

	auth      Authenticator
	registrar Registrar
	verifier  Verifier
	kv        KV
	nav       *Navigator
}

func NewSessionStore(auth Authenticator, registrar Registrar, verifier Verifier, kv KV, nav *Navigator) *SessionStore {
	return &SessionStore{auth: auth, registrar: registrar, verifier: verifier, kv: kv, nav: nav}
}

// Register delegates to the account-creation collaborator.
func (s *SessionStore) Register(ctx context.Context, profile RegistrationForm) RegisterResult {
	u, err := s.registrar.Register(ctx, profile)
	if err != nil {
		return RegisterResult{Message: err.Error()}
	}
	return RegisterResult{Success: true, User: u}
}

// Login authenticates and, on success, persists the {token, user} pair and
// updates the in-memory session. On failure any persisted session is cleared.
func (s *SessionStore) Login(ctx context.Context, email, password string) LoginResult {
	u, token, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		s.clear()
		return LoginResult{Message: err.Error()}
	}

	s.mu.Lock()
	s.user = &u
	s.token = token
	s.mu.Unlock()

	blob, merr := json.Marshal(u)
	if merr != nil {
		log.Printf("[session] could not serialize user %d: %v", u.ID, merr)
		return LoginResult{Success: true, User: u}
	}
	if err := s.kv.Put(keyToken, token); err != nil {
		log.Printf("[session] persist token: %v", err)
	}
	if err := s.kv.Put(keyUser, string(blob)); err != nil {
		log.Printf("[session] persist user: %v", err)
	}
	return LoginResult{Success: true, User: u}
}

// Logout clears durable and in-memory session state and sends the user back
// to the products view.
func (s *SessionStore) Logout() {
	s.clear()
	s.nav.NavigateTo(ViewProducts, nil)
}

// Rehydrate runs once when the session state is created. A stored
// {token, user} pair is trusted as-is without server verification beyond the
// configured Verifier; a token without a user is treated as corrupt state and
// discarded.
func (s *SessionStore) Rehydrate(ctx context.Context) {
	token, okT, err := s.kv.Get(keyToken)
	if err != nil {
		log.Printf("[session] rehydrate token: %v", err)
		return
	}
	blob, okU, err := s.kv.Get(keyUser)
	if err != nil {
		log.Printf("[session] rehydrate user: %v", err)
		return
	}

	if okT && !okU {
		log.Printf("[session] token without user blob, discarding")
		s.clear()
		return
	}
	if !okT || !okU {
		return
	}

	var u domain.User
	if err := json.Unmarshal([]byte(blob), &u); err != nil {
		log.Printf("[session] corrupt user blob, discarding: %v", err)
		s.clear()
		return
	}
	if err := s.verifier.Verify(ctx, token, u); err != nil {
		log.Printf("[session] stored session rejected: %v", err)
		s.clear()
		return
	}

	s.mu.Lock()
	s.user = &u
	s.token = token
	s.mu.Unlock()
}

// User returns the authenticated user, if any.
func (s *SessionStore) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token returns the opaque auth token, if a session exists.
func (s *SessionStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *SessionStore) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	if err := s.kv.Delete(keyToken); err != nil {
		log.Printf("[session] clear token: %v", err)
	}
	if err := s.kv.Delete(keyUser); err != nil {
		log.Printf("[session] clear user: %v", err)
	}
}
