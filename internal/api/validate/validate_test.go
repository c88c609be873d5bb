package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "alice", true},
		{"with allowed symbols", "a.b@c+d-e_f", true},
		{"empty", "", false},
		{"reserved me", "me", false},
		{"spaces", "two words", false},
		{"exclamation", "nope!", false},
		{"max length", strings.Repeat("a", MaxUsernameLength), true},
		{"too long", strings.Repeat("a", MaxUsernameLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsernameFieldError(t *testing.T) {
	err := Username("me")

	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "username", fieldErr.Field)
	assert.Contains(t, err.Error(), "username")
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-address"))
	assert.Error(t, Email(strings.Repeat("a", MaxEmailLength)+"@example.com"))
}

func TestSlug(t *testing.T) {
	assert.NoError(t, Slug("sci-fi_2"))
	assert.Error(t, Slug(""))
	assert.Error(t, Slug("has space"))
	assert.Error(t, Slug("dotted.slug"))
	assert.Error(t, Slug(strings.Repeat("x", MaxSlugLength+1)))
}

func TestYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, Year(current))
	assert.NoError(t, Year(1895))
	assert.Error(t, Year(current+1))
}

func TestScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.NoError(t, Score(score))
	}
	assert.Error(t, Score(MinScore-1))
	assert.Error(t, Score(MaxScore+1))
	assert.Error(t, Score(-5))
}
