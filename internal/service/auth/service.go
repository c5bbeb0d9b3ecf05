// Package auth provides account registration, login and session handling.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/toh-yonetim/dashboard/internal/cache"
	"github.com/toh-yonetim/dashboard/internal/config"
	"github.com/toh-yonetim/dashboard/internal/discord"
	"github.com/toh-yonetim/dashboard/internal/habbo"
	"github.com/toh-yonetim/dashboard/internal/metrics"
	"github.com/toh-yonetim/dashboard/internal/models"
	"github.com/toh-yonetim/dashboard/internal/repository"
	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// Errors returned by the service.
var (
	ErrInvalidRegistration = errors.New("eksik kayıt bilgisi")
	ErrAccountExists       = errors.New("bu kullanıcı adı veya e-posta zaten kayıtlı")
	ErrInvalidCredentials  = errors.New("kullanıcı adı veya şifre hatalı")
	ErrSessionNotFound     = errors.New("oturum bulunamadı")
)

const sessionKeyPrefix = "session:"

// AccountRepository interface for account operations.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByLogin(login string) (*models.Account, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	TouchLastLogin(id uint, at time.Time) error
	Count() (int64, error)
}

// ProfileLookup fetches public profile data used to enrich logins.
type ProfileLookup interface {
	GetUserProfile(ctx context.Context, name string) (*habbo.Profile, error)
	AvatarURL(name string) string
}

// Notifier delivers action logs without blocking the caller.
type Notifier interface {
	Notify(l discord.Log)
}

// RegisterInput is the registration form.
type RegisterInput struct {
	FullName      string
	Username      string
	Email         string
	Password      string
	HabboUsername string
}

// Session is an authenticated login.
type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

// Service handles accounts and sessions.
type Service struct {
	repo       AccountRepository
	sessions   cache.Cache
	profiles   ProfileLookup
	notifier   Notifier
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
	log        *logger.Logger
}

// NewService creates a new auth service.
func NewService(
	repo *repository.AccountRepository,
	sessions cache.Cache,
	profiles *habbo.Client,
	notifier *discord.Client,
	cfg *config.AuthConfig,
	log *logger.Logger,
) *Service {
	return NewServiceWithInterfaces(repo, sessions, profiles, notifier, cfg, log)
}

// NewServiceWithInterfaces creates a new auth service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(
	repo AccountRepository,
	sessions cache.Cache,
	profiles ProfileLookup,
	notifier Notifier,
	cfg *config.AuthConfig,
	log *logger.Logger,
) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		sessions:   sessions,
		profiles:   profiles,
		notifier:   notifier,
		sessionTTL: cfg.SessionDuration(),
		bcryptCost: cost,
		now:        time.Now,
		log:        log,
	}
}

// Register creates an account with the default placement.
func (s *Service) Register(_ context.Context, in RegisterInput) (*models.Account, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.HabboUsername = strings.TrimSpace(in.HabboUsername)

	required := []struct{ field, value string }{
		{"fullName", in.FullName},
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
		{"habboUsername", in.HabboUsername},
	}
	for _, r := range required {
		if r.value == "" {
			metrics.RecordAuthEvent("register", "invalid")
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidRegistration, r.field)
		}
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.RecordAuthEvent("register", "duplicate")
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		FullName:      in.FullName,
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		HabboUsername: in.HabboUsername,
		IsActive:      true,
		Rank:          models.DefaultRank,
		Badge:         models.DefaultBadge,
		JoinDate:      s.now(),
	}
	if err := s.repo.Create(account); err != nil {
		return nil, err
	}
	metrics.RecordAuthEvent("register", "success")

	s.log.Info().
		Uint("account_id", account.ID).
		Str("username", account.Username).
		Msg("Account registered")

	s.notifier.Notify(discord.Log{
		Title:       "🆕 Yeni Kayıt",
		Description: fmt.Sprintf("%s sisteme kayıt oldu!", account.FullName),
		Color:       discord.ColorGreen,
		Fields: []discord.Field{
			{Name: "Kullanıcı Adı", Value: account.Username, Inline: true},
			{Name: "Habbo Kullanıcı Adı", Value: account.HabboUsername, Inline: true},
			{Name: "E-posta", Value: account.Email, Inline: true},
		},
	})

	return account, nil
}

// Login authenticates by username or email and opens a session.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	account, err := s.repo.GetByLogin(strings.TrimSpace(login))
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordAuthEvent("login", "failed")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthEvent("login", "failed")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(account.ID, now); err != nil {
		return nil, err
	}
	account.LastLogin = &now

	s.enrich(ctx, account)

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionKeyPrefix+token, strconv.FormatUint(uint64(account.ID), 10), s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	metrics.RecordAuthEvent("login", "success")

	s.log.Info().Uint("account_id", account.ID).Str("username", account.Username).Msg("Account logged in")

	s.notifier.Notify(discord.Log{
		Title:       "🔐 Giriş Yapıldı",
		Description: fmt.Sprintf("%s sisteme giriş yaptı!", account.FullName),
		Color:       discord.ColorBlue,
		Username:    account.Username,
	})

	return &Session{Token: token, ExpiresAt: now.Add(s.sessionTTL), Account: account}, nil
}

func (s *Service) enrich(ctx context.Context, account *models.Account) {
	if s.profiles == nil || account.HabboUsername == "" {
		return
	}
	profile, err := s.profiles.GetUserProfile(ctx, account.HabboUsername)
	if err != nil {
		s.log.Warn().Err(err).Str("habbo_username", account.HabboUsername).Msg("Failed to fetch profile")
		return
	}
	account.Motto = profile.Motto
	account.Avatar = s.profiles.AvatarURL(account.HabboUsername)
}

// CurrentAccount resolves a session token.
func (s *Service) CurrentAccount(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	raw, err := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if raw == "" {
		return nil, ErrSessionNotFound
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	account, err := s.repo.GetByID(uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return account, err
}

// Logout closes the session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	account, err := s.CurrentAccount(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.sessions.Del(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	metrics.RecordAuthEvent("logout", "success")

	s.log.Info().Uint("account_id", account.ID).Msg("Account logged out")

	s.notifier.Notify(discord.Log{
		Title:       "🚪 Çıkış Yapıldı",
		Description: fmt.Sprintf("%s sistemden çıkış yaptı!", account.FullName),
		Color:       discord.ColorLogout,
		Username:    account.Username,
	})
	return nil
}

// AccountCount returns the number of registered accounts.
func (s *Service) AccountCount(_ context.Context) (int64, error) {
	return s.repo.Count()
}
