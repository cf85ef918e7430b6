package service

import (
	_ "embed"
	"regexp"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	minPasswordLength   = 8
	maxSimilarity       = 0.7
	msgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
	msgPasswordCommon   = "This password is too common."
	msgPasswordNumeric  = "This password is entirely numeric."
	msgPasswordSimilar  = "The password is too similar to the email."
)

//go:embed common_passwords.txt
var commonPasswordList string

var commonPasswords = map[string]bool{}

func init() {
	for _, p := range strings.Split(commonPasswordList, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			commonPasswords[p] = true
		}
	}
}

var nonWord = regexp.MustCompile(`\W+`)

// ValidatePassword returns every rule the password breaks, in a stable
// order. An empty result means the password is acceptable.
func ValidatePassword(password, email string) []string {
	var problems []string

	if email != "" && tooSimilar(password, email) {
		problems = append(problems, msgPasswordSimilar)
	}
	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, msgPasswordTooShort)
	}
	if commonPasswords[strings.ToLower(strings.TrimSpace(password))] {
		problems = append(problems, msgPasswordCommon)
	}
	if isNumeric(password) {
		problems = append(problems, msgPasswordNumeric)
	}
	return problems
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar compares the password against the whole email and each of its
// word parts.
func tooSimilar(password, email string) bool {
	password = strings.ToLower(password)
	email = strings.ToLower(email)

	parts := append([]string{email}, nonWord.Split(email, -1)...)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if similarity(password, part) >= maxSimilarity {
			return true
		}
	}
	return false
}

// similarity is the SequenceMatcher ratio over the characters of a and b.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
