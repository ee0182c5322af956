package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
)

// Publisher pushes created orders to a broker queue for downstream
// consumers (fulfilment, notifications). Messages are persistent JSON.
type Publisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewPublisher(url, queueName string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	// declare up front so a publish never races queue creation
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("conn.Channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	return &Publisher{conn: conn, queueName: queueName}, nil
}

type orderMessage struct {
	OrderID   string             `json:"order_id"`
	UserID    string             `json:"user_id"`
	Status    string             `json:"status"`
	Total     string             `json:"total"`
	Currency  string             `json:"currency"`
	Items     []orderItemMessage `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

type orderItemMessage struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

func (p *Publisher) PublishCreated(ctx context.Context, order domain.Order) error {
	msg := orderMessage{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total.Amount.String(),
		Currency:  order.Total.Currency.String(),
		Items:     make([]orderItemMessage, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		msg.Items = append(msg.Items, orderItemMessage{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.Amount.String(),
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish order: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

// NoopPublisher stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCreated(ctx context.Context, order domain.Order) error {
	return nil
}

