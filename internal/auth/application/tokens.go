package application

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/ravosoft/photohub/backend/internal/auth/domain"
)

const (
	claimEmail     = "email"
	claimSessionID = "sid"

	refreshTokenBytes = 32
	minSecretBytes    = 32
)

var (
	errTokenInvalid = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

type TokenConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	key       []byte
	issuer    string
	accessTTL time.Duration
}

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretBytes)
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}
	return &TokenIssuer{
		key:       []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		accessTTL: cfg.AccessTTL,
	}, nil
}

func (t *TokenIssuer) AccessTTL() time.Duration {
	return t.accessTTL
}

// IssueAccess mints a token for the session and returns it with the
// principal it encodes.
func (t *TokenIssuer) IssueAccess(userID uuid.UUID, email string, sessionID uuid.UUID, now time.Time) (string, domain.Principal, error) {
	principal := domain.Principal{
		UserID:    userID,
		Email:     email,
		SessionID: sessionID,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(t.accessTTL).Truncate(time.Second),
	}

	token, err := jwt.NewBuilder().
		Issuer(t.issuer).
		Subject(userID.String()).
		JwtID(principal.TokenID).
		IssuedAt(now).
		Expiration(principal.ExpiresAt).
		Claim(claimEmail, email).
		Claim(claimSessionID, sessionID.String()).
		Build()
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), t.key))
	if err != nil {
		return "", domain.Principal{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), principal, nil
}

// ParseAccess verifies signature, issuer and time claims.
func (t *TokenIssuer) ParseAccess(raw string) (domain.Principal, error) {
	token, err := jwt.ParseString(
		raw,
		jwt.WithKey(jwa.HS256(), t.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(t.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.TokenExpiredError()) {
			return domain.Principal{}, errTokenExpired
		}
		return domain.Principal{}, errTokenInvalid
	}

	var subject, email, sessionID, tokenID string
	if err := token.Get("sub", &subject); err != nil {
		return domain.Principal{}, errTokenInvalid
	}
	if err := token.Get(claimEmail, &email); err != nil {
		return domain.Principal{}, errTokenInvalid
	}
	if err := token.Get(claimSessionID, &sessionID); err != nil {
		return domain.Principal{}, errTokenInvalid
	}
	if err := token.Get("jti", &tokenID); err != nil || tokenID == "" {
		return domain.Principal{}, errTokenInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return domain.Principal{}, errTokenInvalid
	}
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return domain.Principal{}, errTokenInvalid
	}
	expiresAt, ok := token.Expiration()
	if !ok {
		return domain.Principal{}, errTokenInvalid
	}

	return domain.Principal{
		UserID:    userID,
		Email:     email,
		SessionID: sid,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// NewRefreshToken returns an opaque token for the client and the digest to
// persist.
func NewRefreshToken() (plain string, hash string, err error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	plain = base64.RawURLEncoding.EncodeToString(buf)
	return plain, HashRefreshToken(plain), nil
}

func HashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
