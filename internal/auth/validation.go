package auth

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) < 255
}

// ValidatePassword checks if a password is valid. bcrypt truncates input
// at 72 bytes, so longer passwords are rejected outright.
func ValidatePassword(password string) bool {
	return len(password) >= 5 && len(password) <= 72
}
