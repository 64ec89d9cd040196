package core

import "time"

// User represents an account in the tracker.
//
// A user always carries at least one credential: a password hash, a Google
// identity, or a Microsoft identity. OAuth-only accounts have a nil
// PasswordHash. Username is chosen at first resolution and never changes.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash *string `json:"-"` // Never expose in JSON
	GoogleID     *string `json:"-"`
	MicrosoftID  *string `json:"-"`
}

// Session represents an active login session.
//
// ID is the lowercase hex SHA-256 of the raw token handed to the client, so
// the raw token itself is never stored.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionData combines user and session info.
// The model returned to collaborators. Both fields are nil together when a
// token does not resolve to a valid session.
type SessionData struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// AuthResult is returned by operations that establish a session. It carries
// the raw token (not the hash) so the caller can set the cookie.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}
