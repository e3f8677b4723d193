package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classdeck/classdeck-api/internal/models"
	appErrors "github.com/classdeck/classdeck-api/pkg/errors"
)

type sessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthConfig defines configuration for the session flow.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService exchanges an upstream identity for an explicit session: a
// signed token plus a stored record carrying the classroom bearer token.
// Deleting the record is what sign-out means; no auth state lives anywhere
// else.
type AuthService struct {
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(sessions sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiration <= 0 {
		config.Expiration = 12 * time.Hour
	}
	return &AuthService{
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// SignIn creates a session and returns its signed token.
func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (*models.SignInResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sign-in payload")
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:             uuid.NewString(),
		TeacherID:      req.TeacherID,
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		ClassroomToken: req.ClassroomToken,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.config.Expiration),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	claims := models.SessionClaims{
		SessionID: session.ID,
		TeacherID: session.TeacherID,
		Email:     session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   session.TeacherID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	s.logger.Info("session created",
		zap.String("teacher_id", session.TeacherID),
		zap.Time("expires_at", session.ExpiresAt))
	return &models.SignInResponse{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Validate parses a session token and resolves the live session record.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	session, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.now().UTC().After(session.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "session has expired")
	}
	return session, nil
}

// SignOut deletes the session record.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.logger.Info("session cleared", zap.String("session_id", sessionID))
	return nil
}
