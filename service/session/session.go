package session

import (
	"context"
	"errors"
	"time"

	"dsc/core"
	"dsc/pkg/id"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidSubject token without an account
	ErrInvalidSubject = errors.New("session: invalid subject")
	// ErrInvalidIssuer token issued by an unknown issuer
	ErrInvalidIssuer = errors.New("session: invalid issuer")
)

// Config session config
type Config struct {
	Secret string
	// Issuers accepted issuers, any issuer when empty
	Issuers []string
	// Capacity of the token cache, no cache when zero
	Capacity int
	// CacheTTL how long a verified token is reused without checking it again
	CacheTTL time.Duration
	Leeway   time.Duration
}

// New new session
func New(cfg Config) core.Session {
	var s core.Session = &session{
		secret:  []byte(cfg.Secret),
		issuers: cfg.Issuers,
		leeway:  cfg.Leeway,
		sf:      &singleflight.Group{},
	}

	if cfg.Capacity > 0 {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = time.Minute
		}

		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(cfg.Capacity).LRU().Build(),
			ttl:     ttl,
			leeway:  cfg.Leeway,
		}
	}

	return s
}

type session struct {
	secret  []byte
	issuers []string
	leeway  time.Duration
	sf      *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (string, error) {
	account, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		var claims jwt.RegisteredClaims
		if _, err := jwt.ParseWithClaims(accessToken, &claims, s.key,
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(s.leeway),
		); err != nil {
			return nil, err
		}

		if len(s.issuers) > 0 && !govalidator.IsIn(claims.Issuer, s.issuers...) {
			return nil, ErrInvalidIssuer
		}

		if claims.Subject == "" || !govalidator.IsPrintableASCII(claims.Subject) {
			return nil, ErrInvalidSubject
		}

		return claims.Subject, nil
	})

	if err != nil {
		return "", err
	}

	return account.(string), nil
}

func (s *session) key(*jwt.Token) (interface{}, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("session: secret not configured")
	}

	return s.secret, nil
}

// Issue sign an HS256 access token for account
func Issue(secret, issuer, account string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id.GenTraceID(),
		Issuer:    issuer,
		Subject:   account,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
