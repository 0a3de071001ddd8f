package model

import (
	"errors"
	"time"
)

// Roles assignable to a user. There are no other permission tiers.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the public author projection attached to posts, comments and
// likes. It never carries the credential hash.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username}
}

// Principal is the authenticated actor extracted from a verified token.
// Its contents are trusted verbatim; no store lookup happens per request.
type Principal struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanModify is the single authorization rule: admins may mutate any resource,
// everyone else only resources they own.
func CanModify(actorID, ownerID int64, role string) bool {
	return role == RoleAdmin || actorID == ownerID
}

// RegisterRequest represents the data needed to register a new user.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the login payload: a signed token plus the public identity.
type AuthResponse struct {
	Token string    `json:"token"`
	User  Principal `json:"user"`
}

// VerifyResponse echoes the identity behind a still-valid token.
type VerifyResponse struct {
	Valid bool      `json:"valid"`
	User  Principal `json:"user"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
)
