// internal/queue/queue.go
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// RunRequestQueue is the durable queue report-run requests travel on.
const RunRequestQueue = "report_runs"

// RunRequest asks the worker to execute one report run.
type RunRequest struct {
	UseCache  bool   `json:"use_cache"`
	Limit     int    `json:"limit"`
	BatchSize int    `json:"batch_size"`
	Preview   bool   `json:"preview"`
	Requested string `json:"requested"`
}

// Broker is a thin wrapper over one AMQP connection/channel pair used by
// both the publisher (HTTP API) and the consumer (worker).
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

// Connect dials RabbitMQ and declares the run-request queue.
func Connect(url string, log *zap.Logger) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		RunRequestQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &Broker{conn: conn, ch: ch, log: log}, nil
}

func (b *Broker) Close() {
	if b.ch != nil {
		b.ch.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}

// PublishRunRequest enqueues one run request.
func (b *Broker) PublishRunRequest(req RunRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	err = b.ch.Publish(
		"",              // default exchange
		RunRequestQueue, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish run request: %w", err)
	}
	b.log.Info("run request queued",
		zap.Bool("preview", req.Preview), zap.Int("limit", req.Limit))
	return nil
}

// ConsumeRunRequests delivers queued requests to the handler, one at a
// time. A handler error nacks without requeue: a run that failed once
// will fail again with the same inputs, and operators resubmit.
func (b *Broker) ConsumeRunRequests(handler func(RunRequest) error) error {
	msgs, err := b.ch.Consume(
		RunRequestQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	for d := range msgs {
		var req RunRequest
		if err := json.Unmarshal(d.Body, &req); err != nil {
			b.log.Warn("invalid run request payload, dropping", zap.Error(err))
			d.Nack(false, false)
			continue
		}

		if err := handler(req); err != nil {
			b.log.Error("run request failed", zap.Error(err))
			d.Nack(false, false)
			continue
		}
		d.Ack(false)
	}
	return nil
}
