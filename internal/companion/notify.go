package companion

import (
	"go.uber.org/zap"
)

// Notifier is the transient user-notification surface: the companion's
// equivalent of a toast. It is distinct from logging.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

type logNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier reports notifications through the service logger. The
// terminal front end wraps it to also print to the screen.
func NewLogNotifier(logger *zap.SugaredLogger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Success(message string) {
	n.logger.Infow("notification", "kind", "success", "message", message)
}

func (n *logNotifier) Failure(message string) {
	n.logger.Warnw("notification", "kind", "failure", "message", message)
}
