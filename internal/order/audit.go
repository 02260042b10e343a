package order

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReconciliationEvent names a stock adjustment left outstanding when a
// workflow call failed after remote counters had already moved. Op is the
// adjustment an operator still needs to apply to bring the catalog back in
// line with the stored orders.
type ReconciliationEvent struct {
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Op        string    `json:"op"` // "reduce" or "increase"
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// Emitter publishes reconciliation events. Emission is best-effort: a failed
// emit must not change the outcome of the enclosing workflow call.
type Emitter interface {
	Emit(ctx context.Context, ev ReconciliationEvent)
}

// KafkaEmitter publishes events to a reconciliation topic.
type KafkaEmitter struct {
	w   *kafka.Writer
	log *slog.Logger
}

func NewKafkaEmitter(brokersCSV, topic string, log *slog.Logger) *KafkaEmitter {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return &KafkaEmitter{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		log: log,
	}
}

func (e *KafkaEmitter) Emit(ctx context.Context, ev ReconciliationEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		e.log.Error("reconciliation event marshal failed", "error", err)
		return
	}
	msg := kafka.Message{Key: []byte(ev.OrderID), Value: data, Time: ev.At}
	if err := e.w.WriteMessages(ctx, msg); err != nil {
		e.log.Error("reconciliation event publish failed",
			"order_id", ev.OrderID, "product_id", ev.ProductID, "error", err)
	}
}

func (e *KafkaEmitter) Close() error { return e.w.Close() }

// LogEmitter writes reconciliation events to the log, for deployments
// without a broker.
type LogEmitter struct {
	log *slog.Logger
}

func NewLogEmitter(log *slog.Logger) *LogEmitter { return &LogEmitter{log: log} }

func (e *LogEmitter) Emit(_ context.Context, ev ReconciliationEvent) {
	e.log.Warn("stock reconciliation required",
		"order_id", ev.OrderID,
		"product_id", ev.ProductID,
		"quantity", ev.Quantity,
		"op", ev.Op,
		"reason", ev.Reason,
	)
}
