package core

import "errors"

// Authentication errors
var (
	ErrUserExists         = errors.New("user already exists")              // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")                   // 404 Not Found
	ErrInvalidCredentials = errors.New("incorrect username or password")   // 400/401
	ErrNoPasswordSet      = errors.New("this account has no password set") // 400
)

// Session errors
var (
	ErrInvalidToken    = errors.New("invalid session token") // 401
	ErrSessionNotFound = errors.New("session not found")     // 401
)

// Validation errors (client input)
var (
	ErrUsernameRequired = errors.New("username is required")                                      // 400
	ErrInvalidUsername  = errors.New("username must be 3-31 characters of letters, digits, _, -") // 400
	ErrPasswordRequired = errors.New("password is required")                                      // 400
	ErrPasswordTooShort = errors.New("password is too short")                                     // 400
	ErrPasswordTooLong  = errors.New("password is too long")                                      // 400
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
)
