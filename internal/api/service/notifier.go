package service

import (
	"context"
	"log/slog"
)

// LogCodeSender writes confirmation codes to the structured log instead of
// sending mail. Development stand-in for a real mail sender; it satisfies
// CodeSender so swapping in SMTP later is a construction-time change.
type LogCodeSender struct {
	logger *slog.Logger
}

func NewLogCodeSender(logger *slog.Logger) *LogCodeSender {
	return &LogCodeSender{logger: logger}
}

func (s *LogCodeSender) SendCode(ctx context.Context, email, code string) error {
	s.logger.InfoContext(ctx, "confirmation code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
