package notify

import (
	"contestd/internal/providers"
	"contestd/internal/structures"
	"context"
	"fmt"
)

// NewSink builds the configured notification sink.
func NewSink(conf *structures.Config, logger providers.Logger) (Sink, error) {
	switch conf.Notifier.Type {
	case "onebot":
		if conf.Notifier.Endpoint == "" {
			return nil, fmt.Errorf("onebot notifier requires an endpoint")
		}
		return NewOneBotSink(conf.Notifier.Endpoint, conf.Notifier.Token), nil
	case "telegram":
		if conf.Notifier.Token == "" {
			return nil, fmt.Errorf("telegram notifier requires a token")
		}
		return NewTelegramSink(conf.Notifier.Token)
	case "log":
		return NewLogSink(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifier type: %s", conf.Notifier.Type)
	}
}

// LogSink writes rendered reminders to the notify log. Default sink;
// useful for dry runs and tests.
type LogSink struct {
	logger providers.Logger
}

func NewLogSink(logger providers.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, groupID string, payload Payload) error {
	s.logger.Infof(providers.TypeNotify, "group %s: %s", groupID, RenderText(payload))
	return nil
}
