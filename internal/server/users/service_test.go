package users

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/feas-project/feas-server/internal/common"
	"github.com/feas-project/feas-server/internal/logging"
	"github.com/feas-project/feas-server/internal/server/auth"
	"github.com/feas-project/feas-server/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newTestService(t *testing.T, repo Repository, autoProvision bool) *Service {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  bcrypt.MinCost, // keep tests fast
		DevAutoProvision:            autoProvision,
	}
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	return NewService(repo, l, cfg)
}

type fakeRepo struct {
	createOut *User
	createErr error

	getOut *User
	getErr error

	created *User // last Create argument, for assertions
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = 1
	return &out, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	s := newTestService(t, repo, false)

	res, err := s.Register(context.Background(), "A", "a@x.com", "pw", "Analyst")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.TokenType != "bearer" {
		t.Fatalf("token type: got %q want %q", res.TokenType, "bearer")
	}
	if res.User.Bio != "Digital forensics analyst" {
		t.Fatalf("bio: got %q", res.User.Bio)
	}
	if repo.created.PasswordHash == "" || repo.created.PasswordHash == "pw" {
		t.Fatalf("password must be stored hashed, got %q", repo.created.PasswordHash)
	}
}

func TestRegister_DefaultRole(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	s := newTestService(t, repo, false)

	res, err := s.Register(context.Background(), "A", "a@x.com", "pw", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.User.Role != DefaultRole {
		t.Fatalf("role: got %q want %q", res.User.Role, DefaultRole)
	}
	if res.User.Bio != "Digital forensics analyst" {
		t.Fatalf("bio: got %q", res.User.Bio)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{createErr: common.ErrEmailAlreadyExists}
	s := newTestService(t, repo, false)

	_, err := s.Register(context.Background(), "A", "a@x.com", "pw", "Analyst")
	if !errors.Is(err, common.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &fakeRepo{}, false)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@x.com", "pw"},
		{"empty password", "A", "a@x.com", ""},
		{"no at sign", "A", "ax.com", "pw"},
		{"double at sign", "A", "a@@x.com", "pw"},
		{"no domain dot", "A", "a@xcom", "pw"},
		{"trailing dot", "A", "a@x.", "pw"},
		{"whitespace", "A", "a @x.com", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.userName, tt.email, tt.password, "")
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

// --- Login ---

func hashForTest(t *testing.T, pw string) string {
	t.Helper()
	h, err := auth.HashPassword(pw, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return h
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		getOut: &User{ID: 7, Name: "A", Email: "a@x.com", Role: "Analyst", PasswordHash: hashForTest(t, "pw")},
	}
	s := newTestService(t, repo, false)

	res, err := s.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token == "" || res.User.ID != 7 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		getOut: &User{ID: 7, Email: "a@x.com", PasswordHash: hashForTest(t, "pw")},
	}
	s := newTestService(t, repo, false)

	_, err := s.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailRejectedByDefault(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getErr: common.ErrNotFound}
	s := newTestService(t, repo, false)

	_, err := s.Login(context.Background(), "nobody@x.com", "pw")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_AutoProvisionWhenEnabled(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getErr: common.ErrNotFound}
	s := newTestService(t, repo, true)

	res, err := s.Login(context.Background(), "new@x.com", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.User.Name != "Investigator" || res.User.Role != "Senior Analyst" {
		t.Fatalf("placeholder identity mismatch: %+v", res.User)
	}
	if res.User.Bio != "Digital forensics specialist" {
		t.Fatalf("bio: got %q", res.User.Bio)
	}
	if repo.created.PasswordHash == "" || !auth.CheckPassword("pw", repo.created.PasswordHash) {
		t.Fatalf("auto-provisioned user must store a verifiable hash")
	}
}

func TestLogin_RepoFailureIsInternal(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getErr: errors.New("connection refused")}
	s := newTestService(t, repo, false)

	_, err := s.Login(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, common.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestLogin_ConfiguredFallbackTTL(t *testing.T) {
	t.Parallel()

	// With no interactive validity set, the configured fallback decides
	// the token lifetime.
	cfg := &config.Config{
		SecretKey:       "k",
		DefaultTokenTTL: 2 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	s := NewService(NewInMemoryRepository(), l, cfg)

	before := time.Now()
	res, err := s.Register(context.Background(), "A", "a@x.com", "pw", "Analyst")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	claims, err := auth.ParseToken(res.Token, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}

	exp := claims.ExpiresAt.Time
	if exp.Before(before.Add(2*time.Hour-time.Minute)) || exp.After(before.Add(2*time.Hour+time.Minute)) {
		t.Fatalf("expiry %v not within configured fallback TTL of %v", exp, 2*time.Hour)
	}
}

// --- Identify ---

func TestIdentify_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	s := newTestService(t, repo, false)

	res, err := s.Register(context.Background(), "A", "a@x.com", "pw", "Analyst")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, err := s.Identify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("Identify error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("email: got %q", user.Email)
	}
}

func TestIdentify_InvalidToken(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &fakeRepo{}, false)

	_, err := s.Identify(context.Background(), "garbage.token.here")
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIdentify_ExpiredToken(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getOut: &User{ID: 1, Email: "a@x.com"}}
	s := newTestService(t, repo, false)

	// Sign with the service secret but an expiry already in the past.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: 1,
	})
	tok, err := token.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = s.Identify(context.Background(), tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIdentify_UserNoLongerExists(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getErr: common.ErrNotFound}
	s := newTestService(t, repo, false)

	tok, err := auth.GenerateToken("gone@x.com", 99, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.Identify(context.Background(), tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIdentify_TokenFromDifferentSecret(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{getOut: &User{ID: 1, Email: "a@x.com"}}
	s := newTestService(t, repo, false)

	tok, err := auth.GenerateToken("a@x.com", 1, []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.Identify(context.Background(), tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
