package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/auth/domain"
	"github.com/swiftprep/swiftprep/internal/clock"
	"github.com/swiftprep/swiftprep/internal/config"
	"github.com/swiftprep/swiftprep/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const sessionTokenBytes = 32

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
	clock       clock.Clock
	sessionTTL  time.Duration
}

func New(log *zap.Logger, cfg config.Config, repo domain.Repository, sessionRepo domain.SessionRepository, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &Service{
		log:         log.Named("auth.service"),
		repo:        repo,
		sessionRepo: sessionRepo,
		genID:       genID,
		clock:       clk,
		sessionTTL:  cfg.SessionTTL,
	}
}

// LoginWithGoogle upserts the user for a verified Google identity and
// opens a fresh session. The Google subject is the identity anchor;
// username and avatar are refreshed on every login.
func (s *Service) LoginWithGoogle(ctx context.Context, req domain.GoogleLoginRequest) (*domain.LoginResult, error) {
	googleID := strings.TrimSpace(req.GoogleID)
	username := strings.TrimSpace(req.Username)
	dp := strings.TrimSpace(req.DP)
	if googleID == "" || username == "" || dp == "" {
		return nil, domain.ErrIncompleteProfile
	}

	user, err := s.findOrCreateUser(ctx, googleID, username, dp)
	if err != nil {
		return nil, err
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &domain.LoginResult{
		User:      user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) findOrCreateUser(ctx context.Context, googleID, username, dp string) (*domain.User, error) {
	user, err := s.repo.FindByGoogleID(ctx, googleID)
	if errors.Is(err, domain.ErrUserNotFound) {
		now := s.clock.Now()
		created := &domain.User{
			ID:            s.genID.Generate(),
			Username:      username,
			GoogleID:      googleID,
			DP:            dp,
			LoggedDevices: 0,
			Metadata:      datatypes.JSONMap{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Create(ctx, created); err != nil {
			// Two first logins for the same Google subject can race past
			// the lookup; the loser hits the unique index on google_id and
			// adopts the winner's row.
			if db.IsDuplicateKeyErr(err) {
				return s.repo.FindByGoogleID(ctx, googleID)
			}
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if username != user.Username {
		updates["username"] = username
		user.Username = username
	}
	if dp != user.DP {
		updates["dp"] = dp
		user.DP = dp
	}
	if len(updates) > 0 {
		updates["updated_at"] = s.clock.Now()
		if err := s.repo.UpdateFields(ctx, user.ID, updates); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}

	return s.sessionRepo.RevokeSession(ctx, session.ID, s.clock.Now())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) UserByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) AdjustLoggedDevices(ctx context.Context, userID snowflake.ID, delta int) error {
	if delta == 0 {
		return nil
	}
	return s.repo.AdjustLoggedDevices(ctx, userID, delta)
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
