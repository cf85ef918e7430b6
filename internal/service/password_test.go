package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		email    string
		want     []string
	}{
		{"strong", "tangerine-lighthouse-9", "ada@example.com", nil},
		{"too short", "x7#kq", "ada@example.com", []string{msgPasswordTooShort}},
		{"common", "password", "ada@example.com", []string{msgPasswordCommon}},
		{"numeric", "90817263541", "ada@example.com", []string{msgPasswordNumeric}},
		{"short common numeric", "123456", "ada@example.com", []string{msgPasswordTooShort, msgPasswordCommon, msgPasswordNumeric}},
		{"similar to email", "lovelace.ada", "lovelace.ada@example.com", []string{msgPasswordSimilar}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password, tt.email))
		})
	}
}

func TestValidatePasswordCommonList(t *testing.T) {
	for _, p := range []string{"1qazxsw2", "zaq12wsx", "qwerty12", "jessica1", "Baseball"} {
		t.Run(p, func(t *testing.T) {
			assert.Contains(t, ValidatePassword(p, "someone@example.com"), msgPasswordCommon)
		})
	}
	assert.Greater(t, len(commonPasswords), 7000)
	assert.NotContains(t, ValidatePassword("tangerine-lighthouse-9", "someone@example.com"), msgPasswordCommon)
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 0.75, similarity("abcd", "bcde"), 1e-9)
	assert.InDelta(t, 0.8, similarity("lovelace", "lovelace.ada"), 1e-9)
	assert.InDelta(t, 0.0, similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)
}
