package ports

import "context"

// LoginResult carries the issued credential together with the identity it was
// bound to at issuance time.
type LoginResult struct {
	Token    string
	Username string
	Role     string
}

// AuthService issues stateless signed credentials. Verification happens in the
// HTTP middleware without any storage access.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
