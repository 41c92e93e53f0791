package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID       string   `db:"user_id"`
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	UniqueCode   string   `db:"unique_code"`
	Department   string   `db:"department"`
	Roles        []string `db:"roles"`
	IsEnabled    bool     `db:"is_enabled"`

	SignatureImage []byte `db:"signature_image"`

	AuthProvider   sql.NullString `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	DeletedAt *time.Time `db:"deleted_at"`
	AuditFields
}
