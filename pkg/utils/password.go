package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "11111111": {}, "00000000": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {}, "baseball": {},
	"welcome1": {}, "admin123": {}, "letmein1": {}, "abc12345": {}, "passw0rd": {},
	"superman": {}, "trustno1": {}, "1q2w3e4r": {}, "zaq12wsx": {}, "qwerty12": {},
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordPolicy returns a list of problems with password, empty when it is acceptable.
// username and email are compared case-insensitively.
func CheckPasswordPolicy(password, username, email string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}

	numeric := password != ""
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		problems = append(problems, "This password is entirely numeric.")
	}

	lower := strings.ToLower(password)
	local := strings.ToLower(email)
	if i := strings.IndexByte(local, '@'); i >= 0 {
		local = local[:i]
	}
	if (username != "" && lower == strings.ToLower(username)) || (local != "" && lower == local) {
		problems = append(problems, "The password is too similar to the username or email.")
	}

	if _, ok := commonPasswords[lower]; ok {
		problems = append(problems, "This password is too common.")
	}

	return problems
}
