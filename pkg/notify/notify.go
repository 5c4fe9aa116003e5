package notify

import (
	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
)

// Notifier delivers user-visible notifications. Delivery is fire-and-forget,
// at-least-once; implementations must not block the caller.
type Notifier interface {
	Notify(channel string, title string, body string)
}

// LogNotifier writes notifications to the application log. It is the default
// sink when no webhook is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(channel string, title string, body string) {
	logger := common.GetLoggerWith(common.LoggerNameNotify)
	logger.Info("Notification",
		zap.String("channel", channel),
		zap.String("title", title),
		zap.String("body", body),
	)
}
