package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/identity"
	"github.com/shop/storefront/internal/infrastructure/api"
	"github.com/shop/storefront/internal/infrastructure/credentials"
)

// AuthStore owns the session: the bearer credential and the signed-in
// profile. Every other store reads it to gate actions and registers a
// listener to reset itself on logout.
type AuthStore struct {
	client *api.Client
	creds  *credentials.Store
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	user     *identity.User
	token    string
	onLogout []func()
}

// NewAuthStore creates an auth store backed by the given client and
// credential store
func NewAuthStore(client *api.Client, creds *credentials.Store, logger *zap.Logger) *AuthStore {
	return &AuthStore{
		client: client,
		creds:  creds,
		logger: logger,
		now:    time.Now,
	}
}

// OnLogout registers a listener invoked whenever the session ends, whether
// by explicit logout or backend-reported expiry
func (s *AuthStore) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Hydrate restores a persisted session at startup. An invalid or expired
// credential results in a silent signed-out state rather than a visible
// error, since this runs before any user-initiated action.
func (s *AuthStore) Hydrate(ctx context.Context) {
	session, err := s.creds.Load()
	if err != nil {
		s.logger.Warn("Failed to load persisted session", zap.Error(err))
		return
	}
	if session == nil || session.Token == "" {
		return
	}

	if credentials.Expired(session.Token, s.now()) {
		s.logger.Debug("Persisted token already expired, signing out")
		if err := s.creds.Clear(); err != nil {
			s.logger.Warn("Failed to clear expired session", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	s.token = session.Token
	s.user = &session.User
	s.mu.Unlock()

	// Eagerly validate the credential against the backend. Any failure
	// means an automatic signed-out state; an unauthorized response has
	// already wiped the persisted credential via the transport hook.
	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Debug("Profile revalidation failed", zap.Error(err))
		if err := s.creds.Clear(); err != nil {
			s.logger.Warn("Failed to clear credentials", zap.Error(err))
		}
		s.signOutLocked(false)
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	session.User = *user
	if err := s.creds.Save(session); err != nil {
		s.logger.Warn("Failed to refresh persisted profile", zap.Error(err))
	}
}

// Login authenticates and stores the session. The credential is persisted
// before the in-memory state updates so the very next request already
// carries it.
func (s *AuthStore) Login(ctx context.Context, in api.LoginInput) error {
	session, err := s.client.Login(ctx, in)
	if err != nil {
		return err
	}
	return s.adopt(session)
}

// Register creates an account and stores the returned session
func (s *AuthStore) Register(ctx context.Context, in api.RegisterInput) error {
	session, err := s.client.Register(ctx, in)
	if err != nil {
		return err
	}
	return s.adopt(session)
}

func (s *AuthStore) adopt(session *identity.Session) error {
	if err := s.creds.Save(session); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = session.Token
	s.user = &session.User
	s.mu.Unlock()
	s.logger.Info("Signed in",
		zap.String("user_id", session.User.ID),
		zap.String("role", string(session.User.Role)))
	return nil
}

// Logout ends the session locally and notifies dependent stores. No backend
// call is involved; the token simply stops being sent.
func (s *AuthStore) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("Failed to clear credentials", zap.Error(err))
	}
	s.signOut()
}

// SessionExpired is wired as the API client's session-expiry hook. The
// transport has already wiped the persisted credential at this point.
func (s *AuthStore) SessionExpired() {
	s.logger.Info("Backend reported session expired")
	s.signOut()
}

func (s *AuthStore) signOut() {
	s.signOutLocked(true)
}

func (s *AuthStore) signOutLocked(notify bool) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	listeners := s.onLogout
	s.mu.Unlock()
	if notify {
		for _, fn := range listeners {
			fn()
		}
	}
}

// IsAuthenticated reports whether a session is active
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// CurrentUser returns a copy of the signed-in profile, or nil
func (s *AuthStore) CurrentUser() *identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the cached profile after a profile edit
func (s *AuthStore) SetUser(user *identity.User) {
	s.mu.Lock()
	s.user = user
	token := s.token
	s.mu.Unlock()
	if token != "" && user != nil {
		if err := s.creds.Save(&identity.Session{Token: token, User: *user}); err != nil {
			s.logger.Warn("Failed to persist profile update", zap.Error(err))
		}
	}
}
