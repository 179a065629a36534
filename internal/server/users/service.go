package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feas-project/feas-server/internal/common"
	"github.com/feas-project/feas-server/internal/logging"
	"github.com/feas-project/feas-server/internal/server/auth"
	"github.com/feas-project/feas-server/internal/server/config"
)

// DefaultRole is assigned when registration does not specify a role.
const DefaultRole = "Analyst"

// AuthResult is the bundle returned by Register and Login. The token is
// a signed bearer token; User never carries the password hash out of
// the service boundary (handlers serialize an explicit DTO).
type AuthResult struct {
	Token     string
	TokenType string
	User      *User
}

// Service orchestrates the register/login/identify flows over a
// credential store, the bcrypt hasher, and the token codec. It holds no
// mutable state beyond configuration captured at construction, so all
// methods are safe for concurrent use.
type Service struct {
	repo                Repository
	logger              logging.Logger
	jwtSecret           []byte
	accessTokenValidity time.Duration
	defaultTokenTTL     time.Duration
	bcryptCost          int
	devAutoProvision    bool
}

func NewService(repo Repository, l logging.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:                repo,
		logger:              l.With("module", "users_service"),
		jwtSecret:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidityDuration,
		defaultTokenTTL:     cfg.DefaultTokenTTL,
		bcryptCost:          cfg.BcryptCost,
		devAutoProvision:    cfg.DevAutoProvision,
	}
}

// Register creates a new profile and logs the caller in. The password
// is always hashed and stored, so later logins can verify it. A taken
// email yields common.ErrEmailAlreadyExists; the store's uniqueness
// guarantee decides, not a pre-check.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*AuthResult, error) {

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}
	if role == "" {
		role = DefaultRole
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &User{
		Name:         name,
		Email:        email,
		Role:         role,
		Bio:          synthesizeBio(role),
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issueFor(user)
}

// Login verifies the password against the stored hash and issues a
// token. Unknown email and wrong password both map to
// common.ErrInvalidCredentials, so callers cannot probe which emails
// exist. When dev auto-provisioning is enabled, an unknown email
// creates a placeholder profile instead; the submitted password is
// still hashed and stored so subsequent logins verify.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			if s.devAutoProvision {
				return s.autoProvision(ctx, email, password)
			}
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// Identify resolves a bearer token back to its profile. Any token
// failure, or a subject that no longer resolves, maps to
// common.ErrUnauthorized with no partial trust.
func (s *Service) Identify(ctx context.Context, token string) (*User, error) {

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// Logout exists for API symmetry: tokens are stateless, so there is no
// server-side session to destroy. Clients discard the token; issued
// tokens stay valid until their expiry.
func (s *Service) Logout() {}

func (s *Service) issueFor(user *User) (*AuthResult, error) {
	ttl := s.accessTokenValidity
	if ttl <= 0 {
		ttl = s.defaultTokenTTL
	}

	token, err := auth.GenerateToken(user.Email, user.ID, s.jwtSecret, ttl)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &AuthResult{Token: token, TokenType: "bearer", User: user}, nil
}

func (s *Service) autoProvision(ctx context.Context, email, password string) (*AuthResult, error) {
	s.logger.Warn(ctx, "auto-provisioning unknown user on login; insecure, development only", "email", email)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &User{
		Name:         "Investigator",
		Email:        email,
		Role:         "Senior Analyst",
		Bio:          "Digital forensics specialist",
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		// Raced with a concurrent first login for the same email.
		if errors.Is(err, common.ErrEmailAlreadyExists) {
			return s.Login(ctx, email, password)
		}
		return nil, common.ErrInternal
	}

	return s.issueFor(user)
}

func synthesizeBio(role string) string {
	return "Digital forensics " + strings.ToLower(role)
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrValidation)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	return nil
}

// ValidEmail applies a minimal shape check: exactly one '@', a non-empty
// local part, and a domain containing a dot. Deliverability is not this
// subsystem's problem; the check only rejects obvious junk before the
// store round-trip.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\r\n")
}
