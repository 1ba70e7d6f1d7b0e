package model

// SessionContext carries the resolved identity for an authenticated request.
// It is built by the session middleware and cached in Redis keyed by a
// hash of the identity token.
type SessionContext struct {
	UserID      string `json:"user_id"`
	IdentityKey string `json:"identity_key"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Plan        Plan   `json:"plan"`
}
