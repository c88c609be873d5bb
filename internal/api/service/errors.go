package service

import "errors"

// Sentinel errors shared across the content services. Handlers map these to
// HTTP statuses; anything else is a 500.
var (
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrUserNotFound     = errors.New("user not found")

	// Ownership and role denials both collapse here so a 403 never reveals
	// which check failed.
	ErrForbidden = errors.New("forbidden")

	ErrDuplicateReview = errors.New("review for this title already exists")
	ErrSlugTaken       = errors.New("slug already in use")
)
