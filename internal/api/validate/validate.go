package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 256
	MaxSlugLength     = 50
	MinScore          = 1
	MaxScore          = 10
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// FieldError names the violated field so handlers can surface it to the
// caller instead of a generic message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Username enforces the account name rules: bounded length, the restricted
// character set, and the reserved literal "me" (which would collide with the
// /users/me route).
func Username(username string) error {
	if username == "" {
		return fieldErr("username", "must not be empty")
	}
	if len(username) > MaxUsernameLength {
		return fieldErr("username", fmt.Sprintf("must be at most %d characters", MaxUsernameLength))
	}
	if username == "me" {
		return fieldErr("username", `"me" is reserved`)
	}
	if !usernamePattern.MatchString(username) {
		return fieldErr("username", "may only contain letters, digits and @/./+/-/_")
	}
	return nil
}

func Email(email string) error {
	if email == "" {
		return fieldErr("email", "must not be empty")
	}
	if len(email) > MaxEmailLength {
		return fieldErr("email", fmt.Sprintf("must be at most %d characters", MaxEmailLength))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fieldErr("email", "is not a valid address")
	}
	return nil
}

func Slug(slug string) error {
	if slug == "" {
		return fieldErr("slug", "must not be empty")
	}
	if len(slug) > MaxSlugLength {
		return fieldErr("slug", fmt.Sprintf("must be at most %d characters", MaxSlugLength))
	}
	if !slugPattern.MatchString(slug) {
		return fieldErr("slug", "may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

// Year rejects titles dated in the future.
func Year(year int) error {
	if year > time.Now().Year() {
		return fieldErr("year", "must not be in the future")
	}
	return nil
}

// Score checks the inclusive rating bounds.
func Score(score int) error {
	if score < MinScore || score > MaxScore {
		return fieldErr("score", fmt.Sprintf("must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}
