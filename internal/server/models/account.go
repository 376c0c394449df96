package models

// Roles recognized by the service. The role travels inside the access token
// and is trusted as-is once the signature verifies.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Account is a registered user. PasswordHash is the opaque salted digest
// produced by auth.HashPassword. RefreshToken holds the single currently
// valid refresh credential; nil means no active session.
type Account struct {
	Username     string  `json:"username"`
	PasswordHash string  `json:"passwordHash"`
	Role         string  `json:"role"`
	RefreshToken *string `json:"refreshToken"`
}
