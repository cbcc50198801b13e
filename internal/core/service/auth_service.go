package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	defaultBcryptCost = bcrypt.DefaultCost

	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// AuthConfig holds the credential settings resolved once at startup.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// tokenClaims is the JWT payload: sub carries the account id.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token authentication.
type AuthService struct {
	repo   ports.AuthRepository
	cfg    AuthConfig
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.AuthRepository, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = defaultBcryptCost
	}
	return &AuthService{repo: repo, cfg: cfg, logger: logger, now: time.Now}
}

// Register creates a standard account.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.createAccount(ctx, input, domain.RoleUser)
}

// CreateAdmin creates an elevated account. It is only reachable from the CLI.
func (s *AuthService) CreateAdmin(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.createAccount(ctx, input, domain.RoleAdmin)
}

func (s *AuthService) createAccount(ctx context.Context, input ports.RegisterInput, role string) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	var msgs []string
	if name == "" {
		msgs = append(msgs, "name is required")
	}
	if email == "" {
		msgs = append(msgs, "email is required")
	}
	if input.Password == "" {
		msgs = append(msgs, "password is required")
	} else if len(input.Password) > maxPasswordBytes {
		msgs = append(msgs, fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	if len(msgs) > 0 {
		return nil, domain.NewValidationError(strings.Join(msgs, "; "))
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Picture:      strings.TrimSpace(input.Picture),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", role).Msg("account registered")
	return created, nil
}

// Login verifies credentials and issues a signed token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("accepted").Inc()
	return token, user, nil
}

// Authenticate verifies a bearer token and resolves its subject. Every
// token or subject problem is reported as domain.ErrUnauthorized; store
// faults are returned unwrapped.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// ListUsers returns every account. Callers are gated to the admin role.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
