package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
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

type mockSessionRepo struct {
	byHash map[string]domain.Session
	getErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{byHash: make(map[string]domain.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.Session) error {
	m.byHash[session.TokenHash] = session
	return nil
}

func (m *mockSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (domain.Session, error) {
	if m.getErr != nil {
		return domain.Session{}, m.getErr
	}
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

type authFixture struct {
	router   *gin.Engine
	users    *mockUserRepo
	sessions *mockSessionRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := newMockUserRepo()
	sessions := newMockSessionRepo()

	userSvc := service.NewUserService(logger, users, nil)
	sessionSvc := service.NewSessionService(logger, sessions, users)
	authH := NewAuthHandler(logger, userSvc, sessionSvc, false)

	r := gin.New()
	r.Use(SessionAuthMiddleware(logger, sessionSvc, false))
	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	auth.GET("/user", RequireAuth(), authH.Me)

	return &authFixture{router: r, users: users, sessions: sessions}
}

func (f *authFixture) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthFlow_SignupLoginMeLogout(t *testing.T) {
	f := newAuthFixture(t)

	// Signup crea la cuenta y deja cookie de sesion.
	rec := f.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on signup, got %d: %s", rec.Code, rec.Body.String())
	}
	if c := sessionCookie(rec); c == nil || c.Value == "" || !c.HttpOnly {
		t.Fatalf("expected http-only session cookie on signup")
	}

	// Password incorrecto: 401 con mensaje generico.
	rec = f.do(t, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "wrong"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", rec.Code)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errResp.Error != "invalid credentials" {
		t.Fatalf("expected generic message, got %q", errResp.Error)
	}

	// Email inexistente: misma respuesta, sin enumeracion de usuarios.
	rec = f.do(t, http.MethodPost, "/auth/login", gin.H{"email": "nobody@x.com", "password": "secret1"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on unknown email, got %d", rec.Code)
	}

	// Login correcto deja cookie nueva.
	rec = f.do(t, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie on login")
	}
	if cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}

	// La cookie resuelve la identidad.
	rec = f.do(t, http.MethodGet, "/auth/user", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on /auth/user, got %d", rec.Code)
	}
	var meResp struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &meResp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meResp.User.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q", meResp.User.Email)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password_hash")) {
		t.Fatalf("password hash must never be serialized")
	}

	// Logout revoca y limpia la cookie.
	rec = f.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", rec.Code)
	}
	if cleared := sessionCookie(rec); cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("expected cookie cleared on logout")
	}

	rec = f.do(t, http.MethodGet, "/auth/user", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestAuthFlow_SignupRejections(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@x.com", "password": "short"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "not-an-email", "password": "secret1"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on signup, got %d", rec.Code)
	}
}

func TestAuthFlow_LogoutWithoutSession(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/logout", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout without session, got %d", rec.Code)
	}
}

func TestAuthFlow_ExpiredSessionRejected(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@x.com", "password": "secret1"}, nil)
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}

	// La fila sigue en el store pero el timestamp ya paso.
	for hash, session := range f.sessions.byHash {
		session.ExpiresAt = time.Now().UTC().Add(-time.Hour)
		f.sessions.byHash[hash] = session
	}

	rec = f.do(t, http.MethodGet, "/auth/user", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", rec.Code)
	}
}
