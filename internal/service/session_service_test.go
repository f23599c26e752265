package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

type mockSessionRepo struct {
	byHash map[string]domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{byHash: make(map[string]domain.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.Session) error {
	m.byHash[session.TokenHash] = session
	return nil
}

func (m *mockSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (domain.Session, error) {
	session, ok := m.byHash[tokenHash]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(m.byHash, tokenHash)
	return nil
}

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func newSessionFixture(t *testing.T) (*SessionService, *mockSessionRepo, *mockUserRepo, domain.User) {
	t.Helper()
	sessions := newMockSessionRepo()
	users := newMockUserRepo()
	user := domain.User{ID: "user-1", Email: "a@x.com", CreatedAt: time.Now().UTC()}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewSessionService(zap.NewNop(), sessions, users)
	return svc, sessions, users, user
}

func TestSessionService_IssueThenValidate(t *testing.T) {
	svc, sessions, _, user := newSessionFixture(t)

	token, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a raw token")
	}
	for hash := range sessions.byHash {
		if hash == token {
			t.Fatalf("raw token must never be persisted")
		}
	}

	got, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %q, got %q", user.ID, got.ID)
	}
}

func TestSessionService_EmptyToken(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	if _, err := svc.Validate(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionService_UnknownToken(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	if _, err := svc.Validate(context.Background(), "forged-token"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionService_ExpiryIsFixedAtIssuance(t *testing.T) {
	svc, sessions, _, user := newSessionFixture(t)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dia 6: sigue valida.
	svc.now = func() time.Time { return issuedAt.Add(6 * 24 * time.Hour) }
	if _, err := svc.Validate(context.Background(), token); err != nil {
		t.Fatalf("expected session valid at day 6, got %v", err)
	}

	// La validacion no renueva la vigencia.
	var stored domain.Session
	for _, s := range sessions.byHash {
		stored = s
	}
	if got, want := stored.ExpiresAt, issuedAt.Add(SessionTTL); !got.Equal(want) {
		t.Fatalf("expected expiry %v untouched, got %v", want, got)
	}

	// Dia 8: expirada aunque la fila siga en el store.
	svc.now = func() time.Time { return issuedAt.Add(8 * 24 * time.Hour) }
	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession at day 8, got %v", err)
	}
	if len(sessions.byHash) != 0 {
		t.Fatalf("expected expired row to be deleted lazily")
	}
}

func TestSessionService_RevokeIsIdempotent(t *testing.T) {
	svc, _, _, user := newSessionFixture(t)

	token, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after revoke, got %v", err)
	}

	// Revocar de nuevo, o revocar un token inexistente, no es error.
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Revoke(context.Background(), "never-issued"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionService_ConcurrentSessionsAreIndependent(t *testing.T) {
	svc, _, _, user := newSessionFixture(t)

	first, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens per session")
	}

	if err := svc.Revoke(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(context.Background(), second); err != nil {
		t.Fatalf("expected second session to survive, got %v", err)
	}
}

func TestSessionService_OrphanedSessionIsDeleted(t *testing.T) {
	svc, sessions, users, user := newSessionFixture(t)

	token, err := svc.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delete(users.usersByID, user.ID)

	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for orphaned session, got %v", err)
	}
	if len(sessions.byHash) != 0 {
		t.Fatalf("expected orphaned row to be deleted")
	}
}
