package core

import (
	"context"
)

// Session user session
type Session interface {
	// Login return the account id the access token was issued to
	Login(ctx context.Context, accessToken string) (string, error)
}
