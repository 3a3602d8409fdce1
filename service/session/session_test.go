package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := New(Config{Secret: "secret", Issuers: []string{"dsc"}})

	token, err := Issue("secret", "dsc", "alice", time.Hour)
	require.Nil(t, err)

	account, err := s.Login(ctx, token)
	require.Nil(t, err)
	assert.Equal(t, "alice", account)
}

func TestLoginRejected(t *testing.T) {
	ctx := context.Background()
	s := New(Config{Secret: "secret", Issuers: []string{"dsc"}})

	expired, err := Issue("secret", "dsc", "alice", -time.Hour)
	require.Nil(t, err)
	_, err = s.Login(ctx, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	forged, err := Issue("other", "dsc", "alice", time.Hour)
	require.Nil(t, err)
	_, err = s.Login(ctx, forged)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	foreign, err := Issue("secret", "someone", "alice", time.Hour)
	require.Nil(t, err)
	_, err = s.Login(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidIssuer)

	anonymous, err := Issue("secret", "dsc", "", time.Hour)
	require.Nil(t, err)
	_, err = s.Login(ctx, anonymous)
	assert.ErrorIs(t, err, ErrInvalidSubject)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.Nil(t, err)
	_, err = s.Login(ctx, none)
	assert.NotNil(t, err)

	_, err = s.Login(ctx, "garbage")
	assert.NotNil(t, err)
}

func TestCacheSession(t *testing.T) {
	ctx := context.Background()
	s := New(Config{Secret: "secret", Capacity: 16, CacheTTL: time.Minute})

	token, err := Issue("secret", "", "bob", time.Hour)
	require.Nil(t, err)

	for i := 0; i < 3; i++ {
		account, err := s.Login(ctx, token)
		require.Nil(t, err)
		assert.Equal(t, "bob", account)
	}

	_, err = s.Login(ctx, "garbage")
	assert.NotNil(t, err)
}

func TestCacheSessionHonorsExpiry(t *testing.T) {
	ctx := context.Background()
	s := New(Config{Secret: "secret", Capacity: 16, CacheTTL: time.Hour})

	token, err := Issue("secret", "", "bob", 2*time.Second)
	require.Nil(t, err)

	account, err := s.Login(ctx, token)
	require.Nil(t, err)
	assert.Equal(t, "bob", account)

	time.Sleep(3 * time.Second)

	_, err = s.Login(ctx, token)
	assert.NotNil(t, err)
}
