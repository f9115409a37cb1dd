package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"app/internal/usecase"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier は注文ステータスイベントをトピックに流す。
// 購読側（メール送信など）はこのサービスの外。
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokersCSV string, topic string) *KafkaNotifier {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) NotifyOrderStatus(ctx context.Context, ev usecase.OrderStatusNotification) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	//同じ注文のイベントは同じパーティションに寄せる
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
