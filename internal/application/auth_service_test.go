package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type credentialStoreStub struct {
	byEmail map[string]OperatorCredentials
	byID    map[string]Operator
}

func newCredentialStoreStub(creds ...OperatorCredentials) *credentialStoreStub {
	stub := &credentialStoreStub{
		byEmail: make(map[string]OperatorCredentials),
		byID:    make(map[string]Operator),
	}
	for _, c := range creds {
		stub.byEmail[c.Operator.Email] = c
		stub.byID[c.Operator.ID] = c.Operator
	}
	return stub
}

func (s *credentialStoreStub) GetOperatorCredentialsByEmail(_ context.Context, email string) (OperatorCredentials, error) {
	creds, ok := s.byEmail[email]
	if !ok {
		return OperatorCredentials{}, ErrNotFound
	}
	return creds, nil
}

func (s *credentialStoreStub) GetOperator(_ context.Context, id string) (Operator, error) {
	operator, ok := s.byID[id]
	if !ok {
		return Operator{}, ErrNotFound
	}
	return operator, nil
}

type sessionRepositoryStub struct {
	byToken map[string]Session
	pruned  int
}

func newSessionRepositoryStub() *sessionRepositoryStub {
	return &sessionRepositoryStub{byToken: make(map[string]Session)}
}

func (s *sessionRepositoryStub) CreateSession(_ context.Context, session Session) (Session, error) {
	s.byToken[session.Token] = session
	return session, nil
}

func (s *sessionRepositoryStub) GetSession(_ context.Context, token string) (Session, error) {
	session, ok := s.byToken[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

func (s *sessionRepositoryStub) UpdateSession(_ context.Context, session Session) (Session, error) {
	for token, existing := range s.byToken {
		if existing.ID == session.ID {
			delete(s.byToken, token)
			s.byToken[session.Token] = session
			return session, nil
		}
	}
	return Session{}, ErrNotFound
}

func (s *sessionRepositoryStub) RevokeSession(_ context.Context, token string, revokedAt time.Time) (Session, error) {
	session, ok := s.byToken[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.byToken[token] = session
	return session, nil
}

func (s *sessionRepositoryStub) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	s.pruned++
	for token, session := range s.byToken {
		if !session.ExpiresAt.After(reference) {
			delete(s.byToken, token)
		}
	}
	return nil
}

func equalityVerifier(hashedPassword, password string) error {
	if hashedPassword != password {
		return ErrInvalidCredentials
	}
	return nil
}

func adminCredentials() OperatorCredentials {
	return OperatorCredentials{
		Operator:     Operator{ID: "operator-1", Email: "admin@example.com", DisplayName: "Admin", IsAdmin: true},
		PasswordHash: "correct-password",
	}
}

func newAuthServiceForTest(creds *credentialStoreStub, sessions *sessionRepositoryStub) *AuthService {
	return NewAuthService(creds, sessions, equalityVerifier, sequentialIDs("token"), func() time.Time { return serviceNow }, time.Hour)
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		sessions := newSessionRepositoryStub()
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), sessions)

		result, err := service.Authenticate(context.Background(), AuthenticateParams{
			Email:    "  Admin@Example.COM ",
			Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		if result.Operator.ID != "operator-1" {
			t.Fatalf("unexpected operator %#v", result.Operator)
		}
		if result.Session.Token == "" || result.Session.OperatorID != "operator-1" {
			t.Fatalf("unexpected session %#v", result.Session)
		}
		if !result.Session.ExpiresAt.Equal(serviceNow.Add(time.Hour)) {
			t.Fatalf("unexpected expiry %s", result.Session.ExpiresAt)
		}
		if sessions.pruned == 0 {
			t.Fatal("expected expired sessions to be pruned during login")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), newSessionRepositoryStub())
		_, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "admin@example.com", Password: "nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("hides unknown accounts behind ErrInvalidCredentials", func(t *testing.T) {
		service := newAuthServiceForTest(newCredentialStoreStub(), newSessionRepositoryStub())
		_, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "nobody@example.com", Password: "x"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects disabled accounts", func(t *testing.T) {
		creds := adminCredentials()
		creds.Disabled = true
		service := newAuthServiceForTest(newCredentialStoreStub(creds), newSessionRepositoryStub())

		_, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "admin@example.com", Password: "correct-password"})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Fatalf("expected ErrAccountDisabled, got %v", err)
		}
	})

	t.Run("rejects blank credentials", func(t *testing.T) {
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), newSessionRepositoryStub())
		for _, params := range []AuthenticateParams{
			{Email: "", Password: "x"},
			{Email: "admin@example.com", Password: ""},
		} {
			if _, err := service.Authenticate(context.Background(), params); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials for %#v, got %v", params, err)
			}
		}
	})
}

func TestAuthService_RefreshSession(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T) (*AuthService, *sessionRepositoryStub, Session) {
		t.Helper()
		sessions := newSessionRepositoryStub()
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), sessions)
		result, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "admin@example.com", Password: "correct-password"})
		if err != nil {
			t.Fatalf("seed Authenticate failed: %v", err)
		}
		return service, sessions, result.Session
	}

	t.Run("rotates the token and extends the window", func(t *testing.T) {
		service, sessions, session := login(t)
		service.now = func() time.Time { return serviceNow.Add(30 * time.Minute) }

		result, err := service.RefreshSession(context.Background(), RefreshSessionParams{Token: session.Token})
		if err != nil {
			t.Fatalf("RefreshSession failed: %v", err)
		}

		if result.Session.Token == session.Token {
			t.Fatal("expected a rotated token")
		}
		if !result.Session.ExpiresAt.Equal(serviceNow.Add(30*time.Minute + time.Hour)) {
			t.Fatalf("unexpected expiry %s", result.Session.ExpiresAt)
		}
		if _, err := sessions.GetSession(context.Background(), session.Token); !errors.Is(err, ErrNotFound) {
			t.Fatal("old token must stop resolving")
		}
	})

	t.Run("rejects revoked sessions", func(t *testing.T) {
		service, _, session := login(t)
		if err := service.RevokeSession(context.Background(), session.Token); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}

		_, err := service.RefreshSession(context.Background(), RefreshSessionParams{Token: session.Token})
		if !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		service, _, session := login(t)
		service.now = func() time.Time { return serviceNow.Add(2 * time.Hour) }

		_, err := service.RefreshSession(context.Background(), RefreshSessionParams{Token: session.Token})
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects unknown and blank tokens", func(t *testing.T) {
		service, _, _ := login(t)
		for _, token := range []string{"", "unknown"} {
			if _, err := service.RefreshSession(context.Background(), RefreshSessionParams{Token: token}); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials for %q, got %v", token, err)
			}
		}
	})
}

func TestAuthService_RevokeSession(t *testing.T) {
	t.Parallel()

	t.Run("marks the session revoked", func(t *testing.T) {
		sessions := newSessionRepositoryStub()
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), sessions)
		result, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "admin@example.com", Password: "correct-password"})
		if err != nil {
			t.Fatalf("seed Authenticate failed: %v", err)
		}

		if err := service.RevokeSession(context.Background(), result.Session.Token); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}

		stored, err := sessions.GetSession(context.Background(), result.Session.Token)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if stored.RevokedAt == nil || !stored.RevokedAt.Equal(serviceNow) {
			t.Fatalf("expected revocation timestamp, got %#v", stored.RevokedAt)
		}
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), newSessionRepositoryStub())
		if err := service.RevokeSession(context.Background(), "unknown"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T) (*AuthService, Session) {
		t.Helper()
		service := newAuthServiceForTest(newCredentialStoreStub(adminCredentials()), newSessionRepositoryStub())
		result, err := service.Authenticate(context.Background(), AuthenticateParams{Email: "admin@example.com", Password: "correct-password"})
		if err != nil {
			t.Fatalf("seed Authenticate failed: %v", err)
		}
		return service, result.Session
	}

	t.Run("returns the operator principal", func(t *testing.T) {
		service, session := login(t)
		principal, err := service.ValidateSession(context.Background(), session.Token)
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if principal.OperatorID != "operator-1" || !principal.IsAdmin {
			t.Fatalf("unexpected principal %#v", principal)
		}
	})

	t.Run("maps unknown tokens to ErrUnauthorized", func(t *testing.T) {
		service, _ := login(t)
		if _, err := service.ValidateSession(context.Background(), "unknown"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects blank tokens", func(t *testing.T) {
		service, _ := login(t)
		if _, err := service.ValidateSession(context.Background(), "  "); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects expired sessions", func(t *testing.T) {
		service, session := login(t)
		service.now = func() time.Time { return serviceNow.Add(2 * time.Hour) }
		if _, err := service.ValidateSession(context.Background(), session.Token); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects revoked sessions", func(t *testing.T) {
		service, session := login(t)
		if err := service.RevokeSession(context.Background(), session.Token); err != nil {
			t.Fatalf("RevokeSession failed: %v", err)
		}
		if _, err := service.ValidateSession(context.Background(), session.Token); !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})
}
