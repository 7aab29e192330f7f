package query

import "github.com/rs/zerolog"

// Level grades a notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier surfaces transient user-visible messages; the UI equivalent is
// a toast.
type Notifier interface {
	Notify(level Level, message string)
}

// LogNotifier routes notifications to a zerolog logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		n.Logger.Error().Msg(message)
	default:
		n.Logger.Info().Msg(message)
	}
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Level, string) {}
