package console

import "github.com/sellerhub/go-seller-console/pkg/logger"

// Notifier receives the user-facing outcome of an orchestrated action. The
// presentation layer supplies its own implementation (toasts, in the original
// dashboard); the default writes through the package logger.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that logs notifications instead of
// displaying them.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Success(message string) {
	logger.Info("%s", message)
}

func (logNotifier) Error(message string) {
	logger.Warn("%s", message)
}
