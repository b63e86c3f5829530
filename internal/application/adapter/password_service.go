package adapter

// PasswordService hashes and checks driver secrets. Passwords and PINs share
// the same bcrypt hashing.
type PasswordService interface {
	HashPassword(secret string) (string, error)
	// VerifyPassword returns nil when secret matches hash.
	VerifyPassword(hash, secret string) error
	ValidatePasswordStrength(password string) error
	// ValidatePinFormat accepts 4 to 6 ASCII digits.
	ValidatePinFormat(pin string) error
}
