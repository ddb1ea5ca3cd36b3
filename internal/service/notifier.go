package service

import (
	"context"

	"github.com/mehdi559/poe/internal/i18n"
	"github.com/mehdi559/poe/internal/logger"
)

// Notifier delivers user-facing notifications after successful mutations.
// Messages are already localized by the time they leave the translator.
type Notifier interface {
	Notify(ctx context.Context, key string, params map[string]string)
}

// LogNotifier resolves notification keys and writes them to the structured
// log. The desktop shell tails this channel for toasts. The language is
// looked up per notification so a profile language change applies
// immediately.
type LogNotifier struct {
	language func() string
}

// NewLogNotifier creates a notifier resolving messages in the language the
// callback reports at notification time.
func NewLogNotifier(language func() string) *LogNotifier {
	return &LogNotifier{language: language}
}

func (n *LogNotifier) Notify(ctx context.Context, key string, params map[string]string) {
	logger.FromContext(ctx).Info("notification",
		"key", key,
		"message", n.message(key, params),
	)
}

func (n *LogNotifier) message(key string, params map[string]string) string {
	return i18n.New(n.language()).Resolve(key, params)
}

// NopNotifier discards notifications. Used by tests.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, key string, params map[string]string) {}
