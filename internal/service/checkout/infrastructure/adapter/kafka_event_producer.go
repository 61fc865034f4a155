package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"artisan/internal/pkg/logger"
	"artisan/internal/pkg/mq"
	"artisan/internal/service/checkout/domain"
	"artisan/internal/service/checkout/port"
)

// KafkaEventProducer 在订单完成后向 Kafka 发布一条通知事件。
// 这只是事后广播（邮件、运营侧消费），不是订单处理流水线。
type KafkaEventProducer struct {
	writer *kafka.Writer
}

func NewKafkaEventProducer(writer *kafka.Writer) *KafkaEventProducer {
	return &KafkaEventProducer{writer: writer}
}

// orderPlacedEvent 是发布到 Kafka 的消息结构。
type orderPlacedEvent struct {
	OrderID     string    `json:"orderId"`
	Email       string    `json:"email"`
	ItemCount   int       `json:"itemCount"`
	TotalAmount float64   `json:"totalAmount"`
	PlacedAt    time.Time `json:"placedAt"`
}

func (p *KafkaEventProducer) OrderPlaced(ctx context.Context, order *domain.Order) error {
	event := orderPlacedEvent{
		OrderID:     order.ID,
		Email:       order.Customer.Email,
		ItemCount:   order.ItemCount,
		TotalAmount: order.GrandTotal,
		PlacedAt:    order.PlacedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("failed to marshal order placed event")
		return err
	}
	return mq.ProduceMessage(ctx, p.writer, []byte(order.ID), payload)
}

var _ port.EventProducer = (*KafkaEventProducer)(nil)
