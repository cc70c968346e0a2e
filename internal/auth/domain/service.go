package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	LoginWithGoogle(ctx context.Context, req GoogleLoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	UserByID(ctx context.Context, id snowflake.ID) (*User, error)
	AdjustLoggedDevices(ctx context.Context, userID snowflake.ID, delta int) error
}

// GoogleLoginRequest carries the verified identity returned by Google
// plus request metadata recorded on the session.
type GoogleLoginRequest struct {
	GoogleID  string
	Username  string
	DP        string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
