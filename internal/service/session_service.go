package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
)

// SessionTTL es fijo a la emision; la validacion nunca extiende la vigencia.
const SessionTTL = 7 * 24 * time.Hour

const sessionTokenBytes = 32

// ErrNoSession cubre token ausente, desconocido, expirado o huerfano.
var ErrNoSession = errors.New("no valid session")

// SessionService es la unica autoridad del ciclo de vida de sesiones.
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewSessionService(logger *zap.Logger, sessions repository.SessionRepository, users repository.UserRepository) *SessionService {
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		users:    users,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Issue genera un token aleatorio, persiste solo su hash y devuelve el crudo.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	if s.sessions == nil {
		return "", errors.New("session service not configured")
	}

	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := s.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashSessionToken(token),
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resuelve un token crudo al usuario dueño de la sesion.
// Filas expiradas o huerfanas se borran de forma oportunista.
func (s *SessionService) Validate(ctx context.Context, token string) (domain.User, error) {
	if s.sessions == nil || s.users == nil {
		return domain.User{}, errors.New("session service not configured")
	}
	if token == "" {
		return domain.User{}, ErrNoSession
	}

	tokenHash := hashSessionToken(token)
	session, err := s.sessions.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, err
	}

	if s.now().After(session.ExpiresAt) {
		if err := s.sessions.DeleteByTokenHash(ctx, tokenHash); err != nil && s.logger != nil {
			s.logger.Warn("delete expired session failed", zap.Error(err))
		}
		return domain.User{}, ErrNoSession
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := s.sessions.DeleteByTokenHash(ctx, tokenHash); err != nil && s.logger != nil {
				s.logger.Warn("delete orphaned session failed", zap.Error(err))
			}
			return domain.User{}, ErrNoSession
		}
		return domain.User{}, err
	}
	return user, nil
}

// Revoke borra la sesion si existe; revocar dos veces no es error.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if s.sessions == nil {
		return errors.New("session service not configured")
	}
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByTokenHash(ctx, hashSessionToken(token))
}

func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
