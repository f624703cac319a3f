package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	recentTransactions = 20
	defaultListLimit   = 50
	maxListLimit       = 200
	defaultTokenTTL    = 12 * time.Hour
)

// Credentials configure the single admin account and token signing
type Credentials struct {
	Email        string
	PasswordHash string // bcrypt
	TokenSecret  string
	TokenTTL     time.Duration
}

// Service authenticates the administrator and serves dashboard data
type Service struct {
	txRepo    persistence.TransactionRepository
	agentRepo persistence.AgentRepository
	sessions  persistence.SessionStore
	creds     Credentials
	clock     core.Clock
	logger    core.Logger
}

var _ portuse.AdminUseCase = (*Service)(nil)

// NewService creates a new admin Service
func NewService(
	txRepo persistence.TransactionRepository,
	agentRepo persistence.AgentRepository,
	sessions persistence.SessionStore,
	creds Credentials,
	clock core.Clock,
	logger core.Logger,
) *Service {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.TokenTTL <= 0 {
		creds.TokenTTL = defaultTokenTTL
	}
	return &Service{
		txRepo:    txRepo,
		agentRepo: agentRepo,
		sessions:  sessions,
		creds:     creds,
		clock:     clock,
		logger:    logger,
	}
}

// Login checks the admin credentials and issues a session token
func (s *Service) Login(ctx context.Context, email, password string) (*portuse.Session, error) {
	if s.creds.Email == "" || s.creds.PasswordHash == "" || s.creds.TokenSecret == "" {
		s.logger.Error("Admin login attempted but admin credentials are not configured", nil)
		return nil, errs.ErrInvalidCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.creds.Email)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) == nil
	if !emailOK || !passwordOK {
		s.logger.Warn("Admin login rejected", nil)
		return nil, errs.ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.creds.TokenTTL)
	sessionID := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   s.creds.Email,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.creds.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign admin token: %w", err)
	}

	if err := s.sessions.Save(ctx, sessionID, s.creds.Email, s.creds.TokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store admin session: %w", err)
	}

	s.logger.Info("Admin logged in", map[string]any{"session_id": sessionID})
	return &portuse.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate returns the admin email for a valid, unrevoked token
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}

	subject, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if subject != claims.Subject {
		return "", errs.ErrInvalidToken
	}
	return subject, nil
}

// Logout revokes the session behind token
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return err
	}
	s.logger.Info("Admin logged out", map[string]any{"session_id": claims.ID})
	return nil
}

// Stats builds the dashboard overview
func (s *Service) Stats(ctx context.Context) (*portuse.DashboardStats, error) {
	totals, err := s.txRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	pendingAgents, err := s.agentRepo.CountByStatus(ctx, entity.AgentPending)
	if err != nil {
		return nil, err
	}
	recent, err := s.txRepo.List(ctx, persistence.TransactionFilter{Limit: recentTransactions})
	if err != nil {
		return nil, err
	}

	return &portuse.DashboardStats{
		TransactionStats: *totals,
		PendingAgents:    pendingAgents,
		Recent:           recent,
	}, nil
}

// ListTransactions returns the newest transactions matching filter
func (s *Service) ListTransactions(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	switch filter.Status {
	case "", entity.StatusPending, entity.StatusPaid, entity.StatusDelivered, entity.StatusFailed:
	default:
		return nil, errs.NewValidationError("status", "unknown status "+string(filter.Status), nil)
	}
	if filter.Type != "" && !entity.IsValidTransactionType(filter.Type) {
		return nil, errs.NewValidationError("type", "unknown transaction type "+string(filter.Type), nil)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.txRepo.List(ctx, filter)
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" || s.creds.TokenSecret == "" {
		return nil, errs.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.creds.TokenSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Admin token expired", nil)
		}
		return nil, errs.ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}
