package account

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/huddleup/teamfeed/internal/account/entity"
	"github.com/huddleup/teamfeed/pkg/utilities"
)

// Repository is the storage port for accounts. Provision must create
// the account, its team and its profile atomically.
type Repository interface {
	Provision(ctx context.Context, a *entity.Account, teamID, teamName string) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}

// SessionRepository persists opaque refresh sessions.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}

// PasswordHasher abstracts password hashing so the algorithm can be
// swapped without touching the flows.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrInvalidSignup  = errors.New("email and password are required")
	ErrInvalidSession = errors.New("invalid session")
)

// TokenPair is what a successful login/refresh returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Service orchestrates signup, login and session lifecycle. It is the
// in-repo stand-in for the hosted auth collaborator the rest of the
// service treats as external: its only outward contract is a proven
// account id per request.
type Service struct {
	repo     Repository
	sessions SessionRepository
	hasher   PasswordHasher
	secret   []byte
	issuer   string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(repo Repository, sessions SessionRepository, hasher PasswordHasher, secret []byte) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{
		repo:       repo,
		sessions:   sessions,
		hasher:     hasher,
		secret:     secret,
		issuer:     "teamfeed",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}
}

// Signup registers an account and provisions its team and profile in
// one transaction. Returns the new account id.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidSignup
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	a := &entity.Account{
		ID:           utilities.NewKSUID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Provision(ctx, a, utilities.NewKSUID(), teamNameForEmail(email)); err != nil {
		return "", err
	}
	return a.ID, nil
}

// teamNameForEmail derives the provisioned team's name from the email
// local part, the same default the original signup trigger used.
func teamNameForEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	return fmt.Sprintf("%s's team", local)
}

// Login verifies credentials and issues a token pair. Any mismatch or
// missing account collapses to ErrBadCredentials to avoid enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(a.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return s.issueTokens(ctx, a.ID)
}

// Refresh rotates a refresh session: the old token is revoked before a
// new pair is issued, so a token works at most once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	sess, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if sess.ExpiresAt.Before(time.Now()) {
		_ = s.sessions.Delete(ctx, refreshToken)
		return nil, ErrInvalidSession
	}
	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, sess.AccountID)
}

// Logout revokes the refresh session. Revoking an unknown token is a
// no-op success.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Delete(ctx, refreshToken)
}

func (s *Service) issueTokens(ctx context.Context, accountID string) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": accountID,
		"iat": now.Unix(),
		"exp": now.Add(s.AccessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	rtBytes := make([]byte, 32)
	if _, err := rand.Read(rtBytes); err != nil {
		return nil, err
	}
	refresh := base64.RawURLEncoding.EncodeToString(rtBytes)
	sess := &entity.Session{
		Token:     refresh,
		AccountID: accountID,
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}, nil
}

// VerifyAccessToken parses and verifies a bearer token and returns the
// account id it was issued to.
func (s *Service) VerifyAccessToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidSession
	}
	return sub, nil
}
