package notify

import (
	"context"
	"log/slog"

	"app/internal/usecase"
)

// LogNotifier はブローカー未設定のとき用。イベントをログに書くだけ。
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyOrderStatus(ctx context.Context, ev usecase.OrderStatusNotification) error {
	n.log.Info("order status notification",
		"event_id", ev.EventID,
		"order_id", ev.OrderID,
		"status", ev.Status,
		"email", ev.CustomerEmail,
	)
	return nil
}
