package notify

import (
	"context"
	"fmt"

	"slack-bridge/internal/models"
	"slack-bridge/internal/observability"
	"slack-bridge/internal/slack"
	"slack-bridge/internal/todos"

	"go.uber.org/zap"
)

const DefaultTodoChannel = "general"

// Lifecycle is the set of interception points TodoNotifier subscribes to.
type Lifecycle interface {
	AfterSave(h todos.SaveHook)
	AfterDelete(h todos.DeleteHook)
}

// TodoNotifier posts one Slack message per Todo create, update and delete.
type TodoNotifier struct {
	token     string
	channel   string
	newClient slack.ClientFactory
	logger    *zap.Logger
}

func NewTodoNotifier(token, channel string, newClient slack.ClientFactory, logger *zap.Logger) *TodoNotifier {
	if channel == "" {
		channel = DefaultTodoChannel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoNotifier{
		token:     token,
		channel:   channel,
		newClient: newClient,
		logger:    logger,
	}
}

// Register subscribes the notifier to lc.
func (n *TodoNotifier) Register(lc Lifecycle) {
	lc.AfterSave(n.NotifySave)
	lc.AfterDelete(n.NotifyDelete)
}

func (n *TodoNotifier) NotifySave(ctx context.Context, todo *models.Todo, created bool) error {
	action := "Updated"
	if created {
		action = "Created"
	}
	return n.post(ctx, fmt.Sprintf("Todo %s: %s", action, todo))
}

func (n *TodoNotifier) NotifyDelete(ctx context.Context, todo *models.Todo) error {
	return n.post(ctx, fmt.Sprintf("Todo Deleted: %s", todo))
}

func (n *TodoNotifier) post(ctx context.Context, text string) error {
	err := n.newClient(n.token).PostMessage(ctx, n.channel, text)
	observability.ObserveDispatch(observability.SourceTodo, err)
	if err != nil {
		n.logger.Error("todo notification failed",
			zap.String("channel", n.channel),
			zap.String("text", text),
			zap.Error(err),
		)
		return err
	}
	n.logger.Debug("todo notification sent", zap.String("channel", n.channel), zap.String("text", text))
	return nil
}
