package ports

import "context"

// TokenSlot is the single named durable slot holding the admin session
// token across restarts. Read returns the empty string, not an error, when
// no token is stored.
type TokenSlot interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenSource yields the credential attached to protected backend requests.
// The second return is false when no session is active.
type TokenSource interface {
	Token() (string, bool)
}
