package session

import (
	"context"
	"time"

	"dsc/core"

	"github.com/bluele/gcache"
	"github.com/golang-jwt/jwt/v5"
)

type cacheSession struct {
	core.Session
	tokens gcache.Cache
	ttl    time.Duration
	leeway time.Duration
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (string, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		if account, ok := v.(string); ok {
			return account, nil
		}
	}

	account, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return "", err
	}

	if ttl := s.expiration(accessToken); ttl > 0 {
		_ = s.tokens.SetWithExpire(accessToken, account, ttl)
	}

	return account, nil
}

// expiration how long a verified token may stay cached, never past its exp
func (s *cacheSession) expiration(accessToken string) time.Duration {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return 0
	}

	ttl := s.ttl
	if claims.ExpiresAt != nil {
		if left := time.Until(claims.ExpiresAt.Add(s.leeway)); left < ttl {
			ttl = left
		}
	}

	return ttl
}
