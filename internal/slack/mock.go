package slack

import (
	"context"

	"go.uber.org/zap"
)

// LogPoster implements Poster by logging messages instead of calling Slack.
// Used when no SLACK_TOKEN is configured.
type LogPoster struct {
	logger *zap.Logger
}

func NewLogPoster(logger *zap.Logger) *LogPoster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPoster{logger: logger}
}

func (p *LogPoster) PostMessage(ctx context.Context, channel, text string) error {
	p.logger.Info("slack message (dev mode, not sent)",
		zap.String("channel", channel),
		zap.String("text", text),
	)
	return nil
}

// NewLogPosterFactory ignores the token and always returns the same LogPoster.
func NewLogPosterFactory(logger *zap.Logger) ClientFactory {
	p := NewLogPoster(logger)
	return func(string) Poster { return p }
}
