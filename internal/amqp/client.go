package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"despesas/internal/core"
	"despesas/internal/log"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the client needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Client publishes recorded expenses from a buffered queue so that a slow or
// unreachable broker never stalls the interactive loop.
type Client struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	routingKey   string
	queue        chan *ExpenseRecordedMessage
	logger       *log.Logger
	now          func() time.Time
}

func NewClient(url, exchangeName, routingKey string, queueSize int, logger *log.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client, err := newClient(ch, exchangeName, routingKey, queueSize, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

func newClient(ch channel, exchangeName, routingKey string, queueSize int, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Discard()
	}
	client := &Client{
		channel:      ch,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		queue:        make(chan *ExpenseRecordedMessage, queueSize),
		logger:       logger.WithComponent(log.ComponentAMQP),
		now:          time.Now,
	}

	if err := client.setup(); err != nil {
		ch.Close()
		return nil, fmt.Errorf("setup exchange: %w", err)
	}
	return client, nil
}

func (c *Client) setup() error {
	return c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
}

// Enqueue schedules e for publishing. It never blocks: when the queue is full
// the event is dropped and false is returned.
func (c *Client) Enqueue(e core.Expense) bool {
	msg := NewExpenseRecordedMessage(e, c.now())
	select {
	case c.queue <- msg:
		return true
	default:
		c.logger.Warn("Publish queue full, dropping event",
			log.FieldMessageID, msg.ID,
			log.FieldCategory, msg.Category)
		return false
	}
}

// Run publishes queued messages until ctx is done, then flushes what is left.
func (c *Client) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.drain(context.WithoutCancel(ctx))
			return nil
		case msg := <-c.queue:
			c.publishLogged(context.WithoutCancel(ctx), msg)
		}
	}
}

func (c *Client) drain(ctx context.Context) {
	for {
		select {
		case msg := <-c.queue:
			c.publishLogged(ctx, msg)
		default:
			return
		}
	}
}

func (c *Client) publishLogged(ctx context.Context, msg *ExpenseRecordedMessage) {
	if err := c.Publish(ctx, msg); err != nil {
		c.logger.ErrorContext(ctx, "Failed to publish expense event",
			log.FieldMessageID, msg.ID,
			log.FieldError, err)
	}
}

// Publish sends one message synchronously.
func (c *Client) Publish(ctx context.Context, msg *ExpenseRecordedMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.InfoContext(ctx, "Published expense event",
		log.FieldOperation, log.OpPublish,
		log.FieldMessageID, msg.ID,
		log.FieldExchange, c.exchangeName,
		log.FieldRoutingKey, c.routingKey)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
