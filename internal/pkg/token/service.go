package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the caller's verified reference, derived from a signed
// session token. The zero value is the anonymous caller.
type Identity struct {
	ID    string
	Email string
	Admin bool
}

// Anonymous is the sentinel for requests carrying no usable credential.
var Anonymous = Identity{}

func (i Identity) IsAnonymous() bool {
	return i.ID == ""
}

type Claims struct {
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`

	jwtlib.RegisteredClaims
}

type Service interface {
	// Verify checks the signed session token and returns the identity it
	// carries. Malformed or expired tokens return an error; callers decide
	// whether anonymous access is acceptable.
	Verify(tokenString string) (Identity, error)
	// Issue mints a session token for the identity. Used by tooling and
	// tests; production tokens come from the identity provider.
	Issue(identity Identity, ttl time.Duration) (string, error)
}

type HMACService struct {
	secret []byte

	now func() time.Time
}

func NewHMACService(secret string) *HMACService {
	return &HMACService{secret: []byte(secret), now: time.Now}
}

func (s *HMACService) Verify(tokenString string) (Identity, error) {
	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Anonymous, ErrTokenExpired
		}
		return Anonymous, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Anonymous, ErrTokenInvalid
	}
	if c.Subject == "" {
		return Anonymous, ErrTokenInvalid
	}

	return Identity{ID: c.Subject, Email: c.Email, Admin: c.Admin}, nil
}

func (s *HMACService) Issue(identity Identity, ttl time.Duration) (string, error) {
	if identity.IsAnonymous() {
		return "", ErrTokenInvalid
	}
	if ttl <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Email: identity.Email,
		Admin: identity.Admin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}
