package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// Service owns the session lifecycle: sign up, sign in, sign out and lookup
type Service struct {
	users   UserRepository
	hasher  PasswordHasher
	tokens  TokenService
	revoked RevocationStore

	mu        sync.RWMutex
	listeners map[int]AuthStateListener
	nextID    int
}

func NewService(
	users UserRepository,
	hasher PasswordHasher,
	tokens TokenService,
	revoked RevocationStore,
) *Service {
	return &Service{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		revoked:   revoked,
		listeners: make(map[int]AuthStateListener),
	}
}

// SignUp registers an applicant account and opens a session for it
func (s *Service) SignUp(ctx context.Context, email kernel.Email, password string, fullName kernel.FullName) (*Session, error) {
	email = email.Normalize()
	fullName = kernel.FullName(strings.TrimSpace(fullName.String()))

	if !email.IsValid() {
		return nil, ErrInvalidSignUp().WithDetail("field", "email")
	}
	if len(password) < minPasswordLength {
		return nil, ErrInvalidSignUp().
			WithDetail("field", "password").
			WithDetail("min_length", minPasswordLength)
	}
	if fullName == "" {
		return nil, ErrInvalidSignUp().WithDetail("field", "full_name")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	now := time.Now()
	user := &User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         RoleApplicant,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	session, err := s.openSession(user.Profile())
	if err != nil {
		return nil, err
	}

	s.emit(EventSignedUp, session)
	return session, nil
}

// SignIn checks credentials and opens a session
func (s *Service) SignIn(ctx context.Context, email kernel.Email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email.Normalize())
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, ErrInvalidCredentials()
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials()
	}

	session, err := s.openSession(user.Profile())
	if err != nil {
		return nil, err
	}

	s.emit(EventSignedIn, session)
	return session, nil
}

// SignOut revokes the token until it would have expired
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl > 0 {
		if err := s.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
			return errx.Wrap(err, "failed to revoke session", errx.TypeInternal)
		}
	}

	s.emit(EventSignedOut, nil)
	return nil
}

// GetSession resolves a bearer token to its session
func (s *Service) GetSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check session", errx.TypeInternal)
	}
	if revoked {
		return nil, ErrSessionRevoked()
	}

	return &Session{
		AccessToken: token,
		TokenID:     claims.TokenID,
		ExpiresAt:   claims.ExpiresAt,
		User:        claims.Profile(),
	}, nil
}

// GetProfile loads the current stored profile of a user
func (s *Service) GetProfile(ctx context.Context, id kernel.UserID) (*UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// OnAuthStateChange registers listener and returns a function that removes it
func (s *Service) OnAuthStateChange(listener AuthStateListener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) openSession(profile UserProfile) (*Session, error) {
	token, claims, err := s.tokens.GenerateAccessToken(profile)
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate access token", errx.TypeInternal)
	}

	return &Session{
		AccessToken: token,
		TokenID:     claims.TokenID,
		ExpiresAt:   claims.ExpiresAt,
		User:        profile,
	}, nil
}

func (s *Service) emit(event AuthEvent, session *Session) {
	s.mu.RLock()
	listeners := make([]AuthStateListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logx.Errorf("auth state listener panicked on %s: %v", event, r)
				}
			}()
			l(event, session)
		}()
	}
}
