package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"ivan@example.com",
		"ivan.petrov@mail.example.org",
		"a@b.co",
	}
	for _, email := range valid {
		assert.True(t, isValidEmail(email), email)
	}

	invalid := []string{
		"",
		"ivan",
		"@example.com",
		"ivan@localhost",
		"ivan@exa@mple.com",
	}
	for _, email := range invalid {
		assert.False(t, isValidEmail(email), email)
	}
}
